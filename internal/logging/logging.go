package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// LevelEnv selects the log level (debug, info, warn, error).
const LevelEnv = "FOCUS_LOG_LEVEL"

// New opens (appending) a logfmt log file at path. The terminal belongs to
// the TUI, so nothing is written to stdout or stderr.
func New(path string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, os.Getenv(LevelEnv)), f, nil
}

// NewWriter builds a logger on w. An empty or unknown level means info.
func NewWriter(w io.Writer, level string) *log.Logger {
	lvl := log.InfoLevel
	if level = strings.TrimSpace(level); level != "" {
		if parsed, err := log.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "focus",
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
