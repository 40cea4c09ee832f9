// Package logging builds the application logger. The TUI owns the terminal,
// so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rebeliceyang/lazynav/internal/config"
)

const appName = "lazynav"

// Logger wraps the configured logger and its optional file sink
type Logger struct {
	*log.Logger
	path      string
	closeFile func() error
}

// New returns a logfmt file logger for cfg. An empty path discards output.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	if cfg.Path == "" {
		return &Logger{Logger: NewWriter(io.Discard, level)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		Logger:    NewWriter(f, level),
		path:      cfg.Path,
		closeFile: f.Close,
	}, nil
}

// NewWriter returns a logfmt logger writing to w
func NewWriter(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
}

// Path returns the log file path, or "" when output is discarded
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close closes the file sink
func (l *Logger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}
