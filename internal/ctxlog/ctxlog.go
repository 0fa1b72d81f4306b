// Package ctxlog carries a slog.Logger through context.Context so that
// pipeline stages log through the logger the app configured, never a global.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type so this package's context key cannot collide
// with keys from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, falling back to slog.Default
// when none was attached. Stage code can therefore always log without a
// nil check.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
