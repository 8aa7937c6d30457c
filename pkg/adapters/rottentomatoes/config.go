package rottentomatoes

import (
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name               = "rottentomatoes"
	DefaultBaseURL     = "https://www.rottentomatoes.com"
	BrowsePath         = "/browse/movies_at_home/sort:popular"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeoutSecs = 10
)

type Config struct {
	BaseURL     string `yaml:"base_url"`
	UserAgent   string `yaml:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		BaseURL:     envconfig.String("ROTTEN_TOMATOES_URL"),
		UserAgent:   envconfig.String("ROTTEN_TOMATOES_USER_AGENT"),
		TimeoutSecs: envconfig.Int("ROTTEN_TOMATOES_TIMEOUT_SECONDS", 0),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.BaseURL = envconfig.Or(env.BaseURL, cfg.BaseURL)
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
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
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
