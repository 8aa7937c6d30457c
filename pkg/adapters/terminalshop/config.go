package terminalshop

import (
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name               = "terminalshop"
	DefaultAPIURL      = "https://api.terminal.shop"
	DefaultTimeoutSecs = 15
)

type Config struct {
	BearerToken string `yaml:"bearer_token"`
	APIURL      string `yaml:"api_url"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		BearerToken: envconfig.String("TERMINAL_BEARER_TOKEN"),
		APIURL:      envconfig.String("TERMINAL_API_URL"),
		TimeoutSecs: envconfig.Int("TERMINAL_TIMEOUT_SECONDS", 0),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.BearerToken = envconfig.Or(env.BearerToken, cfg.BearerToken)
	cfg.APIURL = envconfig.Or(env.APIURL, cfg.APIURL)
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = env.TimeoutSecs
	}
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	c.BearerToken = strings.TrimSpace(c.BearerToken)
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

func (c *Config) Validate() error {
	return envconfig.Require(Name, "TERMINAL_BEARER_TOKEN", c.BearerToken)
}
