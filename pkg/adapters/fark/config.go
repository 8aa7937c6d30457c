package fark

import (
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name               = "fark"
	DefaultURL         = "https://www.fark.com/"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeoutSecs = 10
)

type Config struct {
	URL         string `yaml:"url"`
	UserAgent   string `yaml:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

// ConfigFromEnv builds a config using environment variables.
func ConfigFromEnv() *Config {
	return (&Config{
		URL:         envconfig.String("FARK_URL"),
		UserAgent:   envconfig.String("FARK_USER_AGENT"),
		TimeoutSecs: envconfig.Int("FARK_TIMEOUT_SECONDS", 0),
	}).WithDefaults()
}

// ApplyEnvDefaults fills empty config fields from environment variables.
func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.URL = envconfig.Or(env.URL, cfg.URL)
	cfg.UserAgent = envconfig.Or(env.UserAgent, cfg.UserAgent)
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = env.TimeoutSecs
	}
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.URL) == "" {
		c.URL = DefaultURL
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

func (c *Config) Validate() error {
	return nil
}
