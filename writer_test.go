package naadsm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVWriter_WritesHeaderOnceThenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVWriter(path)
	if err := w.Init(); err != nil {
		t.Fatalf("unexpected error on Init: %v", err)
	}
	if err := w.WriteRow(1, 1, map[string]ReportValue{"numInfected": IntValue(3)}); err != nil {
		t.Fatalf("unexpected error on first WriteRow: %v", err)
	}
	if err := w.WriteRow(1, 2, map[string]ReportValue{"numInfected": IntValue(5)}); err != nil {
		t.Fatalf("unexpected error on second WriteRow: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error reading output file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf(UnequalIntParameterError, "total output lines (header + 2 rows)", 3, len(lines))
	}
	if lines[0] != "Run,Day,Variable,Value" {
		t.Errorf(UnequalStringParameterError, "header line", "Run,Day,Variable,Value", lines[0])
	}
	if !strings.Contains(lines[1], "1,1,numInfected,3") {
		t.Errorf("expected first data row to contain the written value, got %q", lines[1])
	}
}

func TestCSVWriter_InitDetectsExistingFileAndSkipsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("Run,Day,Variable,Value\n1,1,x,1\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	w := NewCSVWriter(path)
	if err := w.Init(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteRow(1, 2, map[string]ReportValue{"x": IntValue(2)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf(UnequalIntParameterError, "total lines after append to a pre-existing file", 3, len(lines))
	}
}

func TestFormatReportValue(t *testing.T) {
	if got := formatReportValue(IntValue(42)); got != "42" {
		t.Errorf(UnequalStringParameterError, "formatted int value", "42", got)
	}
	if got := formatReportValue(RealValue(1.5)); got != "1.500000" {
		t.Errorf(UnequalStringParameterError, "formatted real value", "1.500000", got)
	}
}
