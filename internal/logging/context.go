package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, _ := ctx.Value(ctxKey{}).(*log.Logger); logger != nil {
			return logger
		}
	}
	return Default()
}

// WithFields returns a context whose logger carries keyvals on every entry.
func WithFields(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
