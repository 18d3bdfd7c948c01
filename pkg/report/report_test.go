package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nmrtools/bbsbbu/pkg/report"
)

func TestWriteMetric_padsToColumn19(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nnodes", 20, "> nnodes ............ 20\n"},
		{"lenE", 14, "> lenE .............. 14\n"},
		{"lenS", 14, "> lenS .............. 14\n"},
		{"costRELAX", 168, "> costRELAX ......... 168\n"},
		{"costSBBU", 168, "> costSBBU .......... 168\n"},
		{"costBB", 168, "> costBB ............ 168\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := report.WriteMetric(&buf, tt.name, tt.value); err != nil {
				t.Fatalf("WriteMetric: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteMetric(%q, %v) = %q, want %q", tt.name, tt.value, got, tt.want)
			}
		})
	}
}

func TestWriteMetric_longNameStillGetsOneDot(t *testing.T) {
	var buf bytes.Buffer
	name := "an-unusually-long-metric-name"
	if err := report.WriteMetric(&buf, name, 1); err != nil {
		t.Fatalf("WriteMetric: %v", err)
	}
	want := "> " + name + " . 1\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteMetric long name = %q, want %q", got, want)
	}
}

func TestLogger_cleanOverwritesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte("stale line\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	l, skipped, err := report.Open(path, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if skipped {
		t.Fatalf("Open(clean=true) reported skipped, want a fresh log")
	}
	if err := l.Metric("nnodes", 5); err != nil {
		t.Fatalf("Metric: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bytes.Contains(got, []byte("stale line")) {
		t.Errorf("clean=true log still contains stale content: %q", got)
	}
	want := "> nnodes ............ 5\n"
	if string(got) != want {
		t.Errorf("log content = %q, want %q", got, want)
	}
}

func TestLogger_skipsExistingLogWhenNotClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	original := "> nnodes ............ 5\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	l, skipped, err := report.Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !skipped {
		t.Fatalf("Open(clean=false) over an existing log did not report skipped")
	}
	if l != nil {
		t.Fatalf("Open(clean=false) returned a non-nil Logger when skipped")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != original {
		t.Errorf("existing log was modified: got %q, want %q", got, original)
	}
}

func TestLogger_createsFreshLogWhenNotCleanAndAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	l, skipped, err := report.Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if skipped {
		t.Fatalf("Open(clean=false) on a missing log reported skipped")
	}
	if err := l.Metric("lenE", 3); err != nil {
		t.Fatalf("Metric: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "> lenE .............. 3\n"
	if string(got) != want {
		t.Errorf("log content = %q, want %q", got, want)
	}
}
