// Package logger configures the application's structured logging.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup creates a structured JSON logger at the named level, sets it as
// the process default, and returns it. An unrecognized level falls back
// to info with a warning.
func Setup(levelName string) *slog.Logger {
	return setup(os.Stderr, levelName)
}

func setup(w io.Writer, levelName string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		slog.New(slog.NewTextHandler(w, nil)).Warn("invalid log level configured, using default",
			"configured_level", levelName,
			"default_level", "info")
	}

	log := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log
}
