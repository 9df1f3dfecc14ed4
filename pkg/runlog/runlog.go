// Package runlog persists one human-readable record per release attempt.
// The log is append-only during the attempt and is the only artifact a
// release leaves behind locally: one timestamped block per step outcome,
// in execution order, with a header and a terminal-state trailer.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/greenlight-dev/greenlight/pkg/release"
)

// Writer implements release.LogSink backed by a file in Dir. The file is
// named release-YYYYMMDD-HHMMSS.log; a new attempt never appends to a
// previous attempt's file.
type Writer struct {
	Dir string

	file *os.File
	path string
	err  error
}

// New returns a Writer that will create its log file in dir on Begin.
func New(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Path returns the log file path, or "" before Begin.
func (w *Writer) Path() string {
	return w.path
}

// Err returns the first write error encountered, if any. Logging is
// best-effort: a log failure never interrupts a release.
func (w *Writer) Err() error {
	return w.err
}

// Begin opens the log file and writes the attempt header.
func (w *Writer) Begin(project string, started time.Time) {
	name := fmt.Sprintf("release-%s.log", started.Format("20060102-150405"))
	w.path = filepath.Join(w.Dir, name)

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_EXCL, 0o644) //nolint:gosec // log file in operator-chosen dir
	if err != nil {
		w.err = fmt.Errorf("failed to create run log: %w", err)
		return
	}
	w.file = f

	w.writef("release attempt\n")
	w.writef("project: %s\n", project)
	w.writef("started: %s\n", started.Format(time.RFC3339))
	w.writef("\n")
}

// Record appends one step outcome.
func (w *Writer) Record(o release.StepOutcome) {
	w.writef("--- step: %s\n", o.Step)
	w.writef("started:  %s\n", o.Started.Format(time.RFC3339))
	w.writef("duration: %s\n", o.Duration.Round(time.Millisecond))
	w.writef("exit:     %d", o.ExitCode)
	if o.TimedOut {
		w.writef(" (timed out)")
	}
	w.writef("\n")
	if out := strings.TrimSpace(o.Stdout); out != "" {
		w.writef("stdout:\n%s\n", indent(out))
	}
	if errOut := strings.TrimSpace(o.Stderr); errOut != "" {
		w.writef("stderr:\n%s\n", indent(errOut))
	}
	w.writef("\n")
}

// End writes the terminal state and closes the file.
func (w *Writer) End(o release.Outcome) {
	w.writef("result: %s\n", o.State)
	if o.FailedStep != "" {
		w.writef("failed step: %s\n", o.FailedStep)
	}
	if o.Reason != "" {
		w.writef("reason: %s\n", o.Reason)
	}

	if w.file != nil {
		if err := w.file.Close(); err != nil && w.err == nil {
			w.err = err
		}
		w.file = nil
	}
}

func (w *Writer) writef(format string, args ...interface{}) {
	if w.file == nil {
		return
	}
	if _, err := fmt.Fprintf(w.file, format, args...); err != nil && w.err == nil {
		w.err = err
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
