// Package report writes the ".log" metric lines produced by a solve run,
// one "> name value" line per metric, the name
// dot-padded to a fixed column so values line up.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	bberrors "github.com/nmrtools/bbsbbu/pkg/errors"
)

// column is the total width of "name" plus its dot padding before the value.
const column = 19

// WriteMetric writes one "> name value" line to w.
func WriteMetric(w io.Writer, name string, value any) error {
	pad := column - len(name) - 1
	if pad < 1 {
		pad = 1
	}
	_, err := fmt.Fprintf(w, "> %s %s %v\n", name, strings.Repeat(".", pad), value)
	return err
}

// Logger wraps a log file, applying the -clean_log policy described in
// A clean run overwrites an existing log, a non-clean run
// leaves one in place untouched.
type Logger struct {
	f *os.File
}

// Open opens path for logging. If clean is true, any existing log at
// path is overwritten. If clean is false and a log already exists at
// path, Open returns (nil, true, nil): the caller should skip the run
// rather than disturb the existing log.
func Open(path string, clean bool) (l *Logger, skipped bool, err error) {
	flag := os.O_WRONLY | os.O_CREATE
	if clean {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		if !clean && os.IsExist(err) {
			return nil, true, nil
		}
		return nil, false, bberrors.Wrap(bberrors.ErrCodeInternal, err, "open log %s", path)
	}
	return &Logger{f: f}, false, nil
}

// Metric writes one metric line.
func (l *Logger) Metric(name string, value any) error {
	return WriteMetric(l.f, name, value)
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	return l.f.Close()
}
