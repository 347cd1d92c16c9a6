package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/matyjas/nq-mcp/internal/common"
	"github.com/matyjas/nq-mcp/internal/openaq"
)

// RequestFailed is returned in place of an upstream error response.
// The detail goes to the log only.
const RequestFailed = "Request failed"

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// reduce renders a response as the text returned to the caller.
func reduce[T any](logger *common.Logger, tool string, resp openaq.Response[T]) string {
	return openaq.Match(resp,
		func(s openaq.Success[T]) string {
			return fmt.Sprintf("%+v", s.Results)
		},
		func(f openaq.Failure[T]) string {
			logger.Warn().
				Str("tool", tool).
				Int("status_code", f.StatusCode).
				Str("status", f.Status).
				Str("body", f.Body).
				Msg("openaq returned an error response")
			return RequestFailed
		},
	)
}
