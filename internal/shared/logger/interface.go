package logger

import "log/slog"

// Interface is the logging port handed to use cases, repositories and caches.
// Arguments after msg are alternating keys and values.
type Interface interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	With(keysAndValues ...any) Interface
}

type slogLogger struct {
	l *slog.Logger
}

// NewLogger wraps the process logger.
func NewLogger() Interface {
	return New(Get())
}

// New wraps an arbitrary slog logger.
func New(l *slog.Logger) Interface {
	return slogLogger{l: l}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Interface {
	return New(slog.New(slog.DiscardHandler))
}

func (s slogLogger) Debugw(msg string, keysAndValues ...any) { s.l.Debug(msg, keysAndValues...) }
func (s slogLogger) Infow(msg string, keysAndValues ...any) { s.l.Info(msg, keysAndValues...) }
func (s slogLogger) Warnw(msg string, keysAndValues ...any) { s.l.Warn(msg, keysAndValues...) }
func (s slogLogger) Errorw(msg string, keysAndValues ...any) { s.l.Error(msg, keysAndValues...) }

func (s slogLogger) With(keysAndValues ...any) Interface {
	return slogLogger{l: s.l.With(keysAndValues...)}
}
