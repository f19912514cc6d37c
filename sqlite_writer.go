package naadsm

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteWriter is an OutputWriter that writes reporting-variable rows to
// a SQLite database, ported from the teacher's SQLiteLogger (one table
// per record shape there; one "Report" table here, since every
// reporting variable shares the same (run, day, name, value) shape).
type SQLiteWriter struct {
	path string
	db   *sql.DB
}

func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{path: path}
}

func openSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Init creates the Report table if it does not already exist. Rows
// already in an existing table are kept; new rows are added after them.
func (w *SQLiteWriter) Init() error {
	db, err := openSQLiteDB(w.path)
	if err != nil {
		return err
	}
	w.db = db
	_sqlStmt := `
	create table if not exists Report (id integer not null primary key, run int, day int, variable text, kind int, intValue int, realValue real, groupValue text);
	`
	if _, err := w.db.Exec(_sqlStmt); err != nil {
		return fmt.Errorf("%q: %s", err, _sqlStmt)
	}
	return nil
}

// WriteRow inserts one row per reporting variable present in values.
func (w *SQLiteWriter) WriteRow(run, day int, values map[string]ReportValue) error {
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("insert into Report(run, day, variable, kind, intValue, realValue, groupValue) values(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for name, v := range values {
		if _, err := stmt.Exec(run, day, name, int(v.Kind), v.Int, v.Real, formatReportValue(v)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (w *SQLiteWriter) Close() error {
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}
