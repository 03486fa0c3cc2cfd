package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// InitLogger installs the default slog logger: JSON to stderr, plus logFile
// when set. Stdout is left to command output. The returned closer releases
// the log file.
func InitLogger(debug bool, logFile string) io.Closer {
	logger, closer := NewLogger(os.Stderr, debug, logFile)
	slog.SetDefault(logger)
	return closer
}

// NewLogger builds a JSON logger writing to w and, when set, logFile. Close
// the returned closer once the logger is no longer used.
func NewLogger(w io.Writer, debug bool, logFile string) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var (
		sinks  teeHandler
		closer io.Closer = closerFunc(func() error { return nil })
	)
	if w != nil {
		sinks = append(sinks, slog.NewJSONHandler(w, opts))
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			sinks = append(sinks, slog.NewJSONHandler(f, opts))
			closer = f
		} else {
			slog.Error("Failed to open log file", "path", logFile, "error", err)
		}
	}

	switch len(sinks) {
	case 0:
		return slog.New(slog.NewJSONHandler(io.Discard, opts)), closer
	case 1:
		return slog.New(sinks[0]), closer
	default:
		return slog.New(sinks), closer
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// teeHandler sends each record to every sink that accepts its level. A
// failing sink does not keep the record from the others.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, record.Level) {
			errs = append(errs, h.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) derive(fn func(slog.Handler) slog.Handler) teeHandler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = fn(h)
	}
	return out
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}
