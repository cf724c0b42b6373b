// Package logging builds the slog loggers used across adminctl.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates the process logger from the configured level and format
// strings. level is one of debug, info, warn, error (case-insensitive,
// anything else means info); format is "json" for structured output,
// anything else for text.
//
// Output goes to stderr; stdout is reserved for command output.
func New(level, format string) *slog.Logger {
	return NewWithWriter(level, format, os.Stderr)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
