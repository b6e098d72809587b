// Package logging builds the diagnostic logger. Diagnostics go to stderr so
// that stdout carries only the normalization notifications.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string

	// Format is text or json.
	Format string
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          "fixtaskdef",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if opts.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}

// ParseLevel maps a config level name to a log level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
