package orderedmap

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the structured logger a Map reports through. Every record
// carries an "op" attribute naming the map operation that produced it.
type Logger struct {
	*slog.Logger
}

// NewLogger wraps handler. A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = textHandler(os.Stderr, slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger logs JSON records at or above level to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger logs key=value records at or above level to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(textHandler(os.Stderr, level))
}

// NoopLogger drops everything. It is the default for a new Map.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

func textHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// WithOp returns a child logger whose records are tagged with op.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{Logger: l.With("op", op)}
}

// LogBulk records a structural operation (sort, copy, move, clear) that
// touched n entries and left the map with size entries.
func (l *Logger) LogBulk(op string, n, size int) {
	l.WithOp(op).Debug("bulk operation completed", "entries", n, "len", size)
}

// LogViolation records a broken caller contract just before the map panics
// with err.
func (l *Logger) LogViolation(op string, err error) {
	l.WithOp(op).Error("precondition violated", "error", err)
}
