package genarena

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with genarena-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity int) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
	}
}

// WithLive adds a live-count field to the logger.
func (l *Logger) WithLive(live int) *Logger {
	return &Logger{
		Logger: l.Logger.With("live", live),
	}
}

// LogGrow logs a capacity growth step.
func (l *Logger) LogGrow(oldCapacity, newCapacity int) {
	l.Debug("capacity grown",
		"old_capacity", oldCapacity,
		"new_capacity", newCapacity,
	)
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(capacity int) {
	l.Debug("arena cleared",
		"capacity", capacity,
	)
}

// LogDrain logs a drain operation.
func (l *Logger) LogDrain(drained int) {
	l.Debug("arena drained",
		"drained", drained,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(key string, bytes int, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"key", key,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"key", key,
			"bytes", bytes,
		)
	}
}
