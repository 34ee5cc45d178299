// Package obslog wraps log/slog with NEXT's rank-gating rule: in a
// distributed run every rank reaches the same log call, but only rank
// 0 should actually emit it.
package obslog

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init configures the global logger at the given level ("debug",
// "info", "warn", "error"). Output is JSON when NEXT_ENV=production,
// text otherwise.
func Init(levelStr string) {
	level := parseLevel(levelStr)

	var handler slog.Handler
	if os.Getenv("NEXT_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
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

// Get returns the default logger, initializing it at info level on
// first use.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Init("info")
	}
	return defaultLogger
}

// WithComponent returns a logger with a component label.
func WithComponent(component string) *slog.Logger {
	return Get().With("component", component)
}

// Once logs msg only when rank == 0, mirroring the single-printer rule
// a multi-rank run needs to keep its console readable.
func Once(rank int, msg string, args ...any) {
	if rank != 0 {
		return
	}
	Get().Info(msg, args...)
}

// OnceAt logs msg at the given level only when rank == 0.
func OnceAt(rank int, level slog.Level, msg string, args ...any) {
	if rank != 0 {
		return
	}
	Get().Log(context.Background(), level, msg, args...)
}
