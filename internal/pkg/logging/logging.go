// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// SetupLogger installs and returns the default logger. Production gets JSON
// lines; every other environment gets text. Debug level adds source
// locations.
func SetupLogger(appEnv, logLevel string, out io.Writer) *slog.Logger {
	level := ParseLevel(logLevel)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if appEnv == "production" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler).With("app", "snaptools")
	slog.SetDefault(logger)
	return logger
}

// ParseLevel accepts slog level names plus "warning". Anything else is info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
