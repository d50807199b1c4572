package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global JSON logger. The level comes from LOG_LEVEL via
// the config layer; anything unrecognized falls back to info.
func Setup(level string) {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})))
}

// ParseLevel maps a LOG_LEVEL value to its slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
