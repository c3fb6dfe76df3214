// Package logging configures structured logging for splitledger.
//
// Development gets colored tint output; everything else gets JSON.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures the default slog logger for the given environment at
// the level specified by LOG_LEVEL (default: INFO).
func Setup(appEnv string) {
	SetupWithLevel(appEnv, levelFromEnv())
}

// SetupWithLevel configures logging at an explicit level.
func SetupWithLevel(appEnv string, level slog.Level) {
	var handler slog.Handler
	if appEnv == "development" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
