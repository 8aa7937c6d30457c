package searxng

import (
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name               = "searxng"
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36"
	DefaultTimeoutSecs = 30
	DefaultMaxResults  = 30
)

// Config points at a SearXNG instance. BaseURL is mandatory.
type Config struct {
	BaseURL            string `yaml:"base_url"`
	UserAgent          string `yaml:"user_agent"`
	TimeoutSecs        int    `yaml:"timeout_seconds"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		BaseURL:            envconfig.String("SEARXNG_BASE_URL"),
		UserAgent:          envconfig.String("SEARXNG_USER_AGENT"),
		TimeoutSecs:        envconfig.Int("SEARXNG_TIMEOUT_SECONDS", 0),
		InsecureSkipVerify: envconfig.Bool("SEARXNG_INSECURE_SKIP_VERIFY", false),
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
	cfg.InsecureSkipVerify = cfg.InsecureSkipVerify || env.InsecureSkipVerify
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

func (c *Config) Validate() error {
	return envconfig.Require(Name, "SEARXNG_BASE_URL", c.BaseURL)
}
