// Package obslog wraps charmbracelet/log into the checkqueue.Reporter
// shape, plus a constructor that opens a log file named after the
// current date (chosen once, when the file is opened; there is no
// rotation while the process runs).
package obslog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger adapts a *log.Logger to checkqueue.Reporter and is safe for
// concurrent use by the worker and any number of producers.
type Logger struct {
	*log.Logger
	file *os.File
}

// New builds a Logger writing structured, leveled output to w.
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	})
	return &Logger{Logger: l}
}

// NewFile opens (creating as needed) a dated log file under dir and
// returns a Logger writing to it. Callers should defer Close.
func NewFile(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("obslog: create log directory: %w", err)
	}
	name := fmt.Sprintf("lingocheck-%s.log", time.Now().Format("2006-01-02"))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("obslog: open log file: %w", err)
	}

	l := New(f)
	l.file = f
	return l, nil
}

// Close releases the underlying file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Log satisfies checkqueue.Reporter by logging at info level.
func (l *Logger) Log(msg string, keyvals ...any) {
	l.Logger.Info(msg, keyvals...)
}

// ReportError satisfies checkqueue.Reporter.
func (l *Logger) ReportError(err error) {
	if err == nil {
		return
	}
	l.Logger.Error("checkqueue error", "err", err)
}

// WithPrefix returns a derived Logger scoped to a subsystem prefix,
// sharing the underlying file handle.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{Logger: l.Logger.WithPrefix(prefix)}
}
