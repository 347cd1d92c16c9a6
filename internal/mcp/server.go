// Package mcp exposes the OpenAQ tools over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/matyjas/nq-mcp/internal/common"
	"github.com/matyjas/nq-mcp/internal/config"
)

// Instructions is advertised to clients at session start.
const Instructions = "Source of nature intelligence"

// NewServer creates the MCP server with every tool registered.
func NewServer(cfg *config.Config, factory ClientFactory, logger *common.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithInstructions(Instructions),
		server.WithToolHandlerMiddleware(invocationMiddleware(logger)),
		server.WithRecovery(),
	)

	count := RegisterTools(s, factory, logger)

	logger.Info().
		Str("name", cfg.Server.Name).
		Str("version", config.GetVersion()).
		Int("tools", count).
		Msg("MCP server initialized")

	return s
}
