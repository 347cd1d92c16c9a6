package mcp

import (
	"context"

	"github.com/matyjas/nq-mcp/internal/common"
)

// loggerContextKey is the context key for the per-invocation logger.
type loggerContextKey struct{}

// withLogger returns a new context carrying the invocation's logger.
func withLogger(ctx context.Context, logger *common.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// loggerFrom returns the invocation logger, or fallback when none is attached.
func loggerFrom(ctx context.Context, fallback *common.Logger) *common.Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(*common.Logger); ok && l != nil {
		return l
	}
	return fallback
}
