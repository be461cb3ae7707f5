package cli

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Logger provides structured logging for CLI tools. Every record carries
// the run id of the process that wrote it.
type Logger struct {
	Verbose   bool
	DebugMode bool

	runID  string
	logger *slog.Logger
}

// NewLogger creates a logger writing to w. Debug mode logs everything,
// verbose mode logs from info up, otherwise only warnings and errors are
// written. format is "text" or "json".
func NewLogger(w io.Writer, format string, verbose, debug bool) *Logger {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	runID := uuid.New().String()
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
		runID:     runID,
		logger:    slog.New(handler).With("run_id", runID),
	}
}

// NewLoggerFromConfig creates a logger from the logging keys of cfg.
func NewLoggerFromConfig(w io.Writer, cfg *Config) *Logger {
	return NewLogger(w, cfg.LogFormat, cfg.Verbose, cfg.Debug)
}

// RunID returns the id attached to every record.
func (l *Logger) RunID() string {
	return l.runID
}

// Slog returns the underlying logger for packages that take a *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	clone := *l
	clone.logger = l.logger.With(args...)
	return &clone
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}
