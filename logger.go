package entigo

import (
	"log/slog"
	"os"

	"github.com/hupe1980/entigo/core"
)

// Logger wraps slog.Logger with entigo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses the default text handler to stderr.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithEntity adds an entity ID field to the logger.
func (l *Logger) WithEntity(id core.EntityID) *Logger {
	return &Logger{
		Logger: l.Logger.With("entity", uint64(id)),
	}
}

// LogCleanup logs a cleanup sweep.
func (l *Logger) LogCleanup(purged, stores int) {
	l.Debug("cleanup completed",
		"purged", purged,
		"stores", stores,
	)
}

// LogSnapshot logs a snapshot write.
func (l *Logger) LogSnapshot(bytes int, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"error", err,
		)
	} else {
		l.Info("snapshot written",
			"bytes", bytes,
		)
	}
}

// LogRestore logs a snapshot restore.
func (l *Logger) LogRestore(stores int, err error) {
	if err != nil {
		l.Error("restore failed",
			"error", err,
		)
	} else {
		l.Info("restore completed",
			"stores", stores,
		)
	}
}
