package naadsm

import (
	"bytes"
	"fmt"
	"os"
	"sort"
)

// OutputWriter is the narrow seam output sinks implement (spec §1 treats
// per-module cosmetic output formatting and CSV writers as external
// collaborators this core only depends on through this interface).
type OutputWriter interface {
	Init() error
	WriteRow(run, day int, values map[string]ReportValue) error
	Close() error
}

// CSVWriter is an OutputWriter that appends comma-delimited rows to a
// single file, ported from the teacher's CSVLogger (one WriteX method per
// record shape there; one WriteRow method here, since every reporting
// variable shares the same (run, day, name, value) shape).
type CSVWriter struct {
	path   string
	header bool
}

// NewCSVWriter returns a writer that appends to path, matching
// AppendToFile's create-or-append semantics in the teacher.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

func (w *CSVWriter) Init() error {
	if _, err := os.Stat(w.path); err == nil {
		w.header = true
	}
	return nil
}

// WriteRow appends one row per reporting variable present in values, in
// name-sorted order so output is reproducible across map iteration.
// Format: Run,Day,Variable,Value
func (w *CSVWriter) WriteRow(run, day int, values map[string]ReportValue) error {
	var b bytes.Buffer
	if !w.header {
		b.WriteString("Run,Day,Variable,Value\n")
		w.header = true
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := values[name]
		row := fmt.Sprintf("%d,%d,%s,%s\n", run, day, name, formatReportValue(v))
		b.WriteString(row)
	}
	return appendToFile(w.path, b.Bytes())
}

func formatReportValue(v ReportValue) string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindReal:
		return fmt.Sprintf("%f", v.Real)
	case KindGroup:
		keys := make([]string, 0, len(v.Group))
		for k := range v.Group {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%f", k, v.Group[k]))
		}
		return fmt.Sprintf("%q", parts)
	default:
		return ""
	}
}

func (w *CSVWriter) Close() error { return nil }

// appendToFile creates path if it does not exist, or appends to the end
// of the existing file, exactly as the teacher's AppendToFile does.
func appendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
