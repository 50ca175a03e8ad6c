// Package ctxlog carries a *slog.Logger through context.Context so library
// code can log without a global logger or an injected sink on every type.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from
// other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from a context. Callers that never
// injected one get the process default, so logging stays optional for
// library consumers.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Discard returns a logger that drops every record. Handy in tests that
// exercise failure paths expected to log.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
