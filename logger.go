package gradir

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with gradir-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithModule adds a module field to the logger.
func (l *Logger) WithModule(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("module", name),
	}
}

// WithFunction adds a function field to the logger.
func (l *Logger) WithFunction(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("function", name),
	}
}

// LogResolve logs the outcome of a witness resolution.
func (l *Logger) LogResolve(function string, config string, err error) {
	if err != nil {
		l.Error("witness resolution failed",
			"function", function,
			"config", config,
			"error", err,
		)
	} else {
		l.Debug("witness resolved",
			"function", function,
			"config", config,
		)
	}
}
