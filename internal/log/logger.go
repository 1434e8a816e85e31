// Package log builds structured slog loggers from application configuration.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/corpuslabs/ragstore/internal/config"
)

// New creates a logger based on configuration, writing to stderr so that
// search results on stdout stay machine-readable.
func New(cfg config.AppConfig) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
}

// NewWithWriter creates a logger that writes to the given writer.
func NewWithWriter(w io.Writer, format config.LogFormat, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = newTerminalHandler(w, opts)
	}
	return slog.New(handler)
}

// Configure builds a logger from configuration and installs it as the
// process-wide slog default.
func Configure(cfg config.AppConfig) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
