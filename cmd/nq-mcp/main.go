package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/matyjas/nq-mcp/internal/common"
	"github.com/matyjas/nq-mcp/internal/config"
	"github.com/matyjas/nq-mcp/internal/mcp"
	"github.com/matyjas/nq-mcp/internal/openaq"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	config.LoadVersionFromFile()

	configFile := config.Discover()
	cfg, err := config.LoadFromFiles(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Values can be set in nq-mcp.toml or via NQ_* environment variables.")
		os.Exit(1)
	}

	logger := setupLogger(cfg)

	logger.Info().
		Str("version", config.GetFullVersion()).
		Str("transport", cfg.Server.Transport).
		Str("config_file", configFile).
		Str("base_url", cfg.OpenAQ.BaseURL).
		Msg("configuration loaded")

	if os.Getenv(cfg.OpenAQ.APIKeyEnv) == "" {
		logger.Warn().Str("env", cfg.OpenAQ.APIKeyEnv).Msg("api key is not set, tool calls will fail until it is")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}

	logger.Info().Msg("server stopped")
}

// setupLogger creates an arbor logger based on config.
func setupLogger(cfg *config.Config) *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

// newMCPServer wires the OpenAQ client factory into the MCP server.
func newMCPServer(cfg *config.Config, logger *common.Logger) (*mcpserver.MCPServer, error) {
	factory, err := openaq.NewFactory(cfg.OpenAQ.BaseURL, cfg.OpenAQ.APIKeyEnv, openaq.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(cfg, factory, logger), nil
}
