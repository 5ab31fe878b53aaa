package markvault

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with markvault-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a default text handler to stderr.
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

// WithStore adds the store name to the logger.
func (l *Logger) WithStore(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", name),
	}
}

// LogLoad logs the outcome of a load, including which tier produced it.
func (l *Logger) LogLoad(tier string, count int, err error) {
	if err != nil {
		l.Warn("load fell through",
			"tier", tier,
			"error", err,
		)
	} else {
		l.Info("load completed",
			"tier", tier,
			"records", count,
		)
	}
}

// LogCorruptSnapshot logs the removal of an unreadable binary snapshot.
func (l *Logger) LogCorruptSnapshot(path string, err error) {
	l.Warn("deleting corrupt binary snapshot",
		"path", path,
		"error", err,
	)
}

// LogSave logs one snapshot write.
func (l *Logger) LogSave(path string, format string, err error) {
	if err != nil {
		l.Error("snapshot write failed",
			"path", path,
			"format", format,
			"error", err,
		)
	} else {
		l.Debug("snapshot written",
			"path", path,
			"format", format,
		)
	}
}

// LogSeed logs first-run seeding of a default library.
func (l *Logger) LogSeed(count int) {
	l.Info("seeded default library",
		"records", count,
	)
}
