package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerKey keys the logger stored in a context.
type loggerKey struct{}

// WithLogger stores logger in ctx for retrieval by FromContext. Commands
// attach their logger this way so that scan workers pick it up without
// threading it through every call.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, falling back to the
// package default when none is attached.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
