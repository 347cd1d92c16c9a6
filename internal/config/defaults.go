package config

// DefaultAPIKeyEnv is the environment variable holding the OpenAQ credential.
const DefaultAPIKeyEnv = "OPEN_AQ_API_KEY"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:         "nature-iq",
			Transport:    TransportStdio,
			Host:         "localhost",
			Port:         4250,
			EndpointPath: "/mcp",
		},
		OpenAQ: OpenAQConfig{
			BaseURL:   "https://api.openaq.org/",
			APIKeyEnv: DefaultAPIKeyEnv,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}
