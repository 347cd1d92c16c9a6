package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/matyjas/nq-mcp/internal/common"
	"github.com/matyjas/nq-mcp/internal/config"
	"github.com/matyjas/nq-mcp/internal/mcp"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// run serves MCP on the configured transport until ctx is cancelled or,
// for stdio, the client closes stdin.
func run(ctx context.Context, cfg *config.Config, logger *common.Logger, stdin io.Reader, stdout io.Writer) error {
	s, err := newMCPServer(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "failed to create MCP server")
	}

	switch strings.ToLower(cfg.Server.Transport) {
	case config.TransportHTTP:
		return serveHTTP(ctx, cfg, s, logger)
	default:
		return serveStdio(ctx, s, logger, stdin, stdout)
	}
}

// serveStdio reads JSON-RPC from stdin and writes responses to stdout.
func serveStdio(ctx context.Context, s *mcpserver.MCPServer, logger *common.Logger, stdin io.Reader, stdout io.Writer) error {
	stdio := mcpserver.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(os.Stderr, "mcp-stdio: ", log.LstdFlags))

	logger.Info().Str("transport", config.TransportStdio).Msg("server ready")

	err := stdio.Listen(ctx, stdin, stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "stdio server error")
	}
	if ctx.Err() != nil {
		logger.Info().Msg("shutdown signal received")
	}
	return nil
}

// serveHTTP serves streamable HTTP until ctx is cancelled, then drains.
func serveHTTP(ctx context.Context, cfg *config.Config, s *mcpserver.MCPServer, logger *common.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           mcp.NewMux(cfg.Server.EndpointPath, mcp.NewHandler(s, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info().
		Str("transport", config.TransportHTTP).
		Str("url", "http://"+cfg.Address()+cfg.Server.EndpointPath).
		Msg("server ready")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server error")
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}
	return nil
}
