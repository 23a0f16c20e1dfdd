// Package logging builds the charmbracelet logger shared by the CLI and the games.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options selects where log output goes.
type Options struct {
	// Path is a log file to append to. Empty means Writer is used.
	Path string
	// Writer receives output when Path is empty. Nil discards everything.
	Writer io.Writer
	// Level is a charmbracelet/log level name ("debug", "info", ...).
	Level  string
	Prefix string
}

// New returns a logger for opts and a close function for the underlying
// file, if any. The close function is never nil.
func New(opts Options) (*log.Logger, func() error, error) {
	closer := func() error { return nil }

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, closer, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	w := opts.Writer
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, closer, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("cannot open log file %s: %w", opts.Path, err)
		}
		w = f
		closer = f.Close
	}
	if w == nil {
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything. Games start with it so
// they never write into the terminal the TUI owns.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
