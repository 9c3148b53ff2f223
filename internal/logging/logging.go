// Package logging configures the structured logger and carries a
// request-scoped *slog.Logger through the context, so handlers never
// reach for process-wide state.
package logging

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// New builds the base logger: JSON output for production log aggregation,
// text for local development.
func New(env string) *slog.Logger {
	switch env {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Inject stores a logger into ctx. Called by the request-logging
// middleware after tagging the logger with request attributes.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromCtx returns the request-scoped logger, or the default logger when
// the context carries none (tests, startup paths).
func FromCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}
