package saleshistory

import (
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name               = "saleshistory"
	DefaultBaseURL     = "https://www.ebay.com"
	DefaultUserAgent   = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	DefaultTimeoutSecs = 15
)

type Config struct {
	BaseURL     string `yaml:"base_url"`
	UserAgent   string `yaml:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		BaseURL:     envconfig.String("EBAY_BASE_URL"),
		UserAgent:   envconfig.String("EBAY_USER_AGENT"),
		TimeoutSecs: envconfig.Int("EBAY_TIMEOUT_SECONDS", 0),
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
