package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/matyjas/nq-mcp/internal/common"
)

// invocationMiddleware gives every tool call its own correlation id and
// records how it ended.
func invocationMiddleware(logger *common.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			l := logger.WithCorrelationId(uuid.NewString())
			start := time.Now()

			l.Debug().Str("tool", request.Params.Name).Msg("tool call started")

			result, err := next(withLogger(ctx, l), request)
			elapsed := time.Since(start)
			if err != nil {
				l.Error().Str("tool", request.Params.Name).Dur("elapsed", elapsed).Err(err).Msg("tool call aborted")
				return result, err
			}

			l.Debug().
				Str("tool", request.Params.Name).
				Dur("elapsed", elapsed).
				Bool("is_error", result != nil && result.IsError).
				Msg("tool call finished")
			return result, nil
		}
	}
}
