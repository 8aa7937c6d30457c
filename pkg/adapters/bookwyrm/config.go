package bookwyrm

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name               = "bookwyrm"
	DefaultBaseURL     = "https://bookwyrm.social"
	DefaultTimeoutSecs = 10
)

// Config controls which BookWyrm instance is queried.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
	UserAgent   string `yaml:"user_agent"`
}

// ConfigFromEnv builds a config using environment variables.
func ConfigFromEnv() *Config {
	cfg := &Config{
		BaseURL:     envconfig.String("BOOKWYRM_BASE_URL"),
		TimeoutSecs: envconfig.Int("BOOKWYRM_TIMEOUT_SECONDS", 0),
		UserAgent:   envconfig.String("BOOKWYRM_USER_AGENT"),
	}
	return cfg.WithDefaults()
}

// ApplyEnvDefaults fills empty config fields from environment variables.
func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.BaseURL = envconfig.Or(env.BaseURL, cfg.BaseURL)
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = env.TimeoutSecs
	}
	cfg.UserAgent = envconfig.Or(env.UserAgent, cfg.UserAgent)
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
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

// Validate checks that the base URL is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s: invalid BOOKWYRM_BASE_URL %q", Name, c.BaseURL)
	}
	return nil
}
