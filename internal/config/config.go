package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Transport names accepted in [server].transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	OpenAQ  OpenAQConfig  `toml:"openaq"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name         string `toml:"name"`
	Transport    string `toml:"transport"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	EndpointPath string `toml:"endpoint_path"`
}

// OpenAQConfig points the API client at the upstream service.
// The credential itself is never stored here: it is read from the
// environment variable named by APIKeyEnv on every tool invocation.
type OpenAQConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKeyEnv string `toml:"api_key_env"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// Address returns host:port for the HTTP transport.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s (file %d of %d)", path, i+1, len(paths))
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the
// process environment. Variables that are already set win. Missing files
// are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load env file %s", path)
		}
	}
	return nil
}

// applyEnvOverrides applies NQ_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if transport := os.Getenv("NQ_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if host := os.Getenv("NQ_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("NQ_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("NQ_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if baseURL := os.Getenv("NQ_OPENAQ_BASE_URL"); baseURL != "" {
		config.OpenAQ.BaseURL = baseURL
	}
}

// Validate returns a list of human-readable configuration problems.
func (c *Config) Validate() []string {
	var issues []string

	switch strings.ToLower(c.Server.Transport) {
	case TransportStdio, TransportHTTP:
	default:
		issues = append(issues, fmt.Sprintf("server.transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Server.Transport))
	}
	if strings.EqualFold(c.Server.Transport, TransportHTTP) && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		issues = append(issues, fmt.Sprintf("server.port out of range: %d", c.Server.Port))
	}

	u, err := url.Parse(c.OpenAQ.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		issues = append(issues, fmt.Sprintf("openaq.base_url is not an absolute URL: %q", c.OpenAQ.BaseURL))
	}
	if c.OpenAQ.APIKeyEnv == "" {
		issues = append(issues, "openaq.api_key_env must name an environment variable")
	}

	return issues
}

// SearchPaths returns TOML files to auto-discover (first match wins).
// NQ_CONFIG, when set, is the only candidate.
func SearchPaths() []string {
	if explicit := os.Getenv("NQ_CONFIG"); explicit != "" {
		return []string{explicit}
	}

	candidates := []string{
		"nq-mcp.toml",
		filepath.Join("config", "nq-mcp.toml"),
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "nq-mcp.toml"),
		filepath.Join(binDir, "config", "nq-mcp.toml"),
	}
	paths = append(paths, candidates...)

	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// Discover returns the first existing file from SearchPaths, or "".
func Discover() string {
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
