package ytdlp

import (
	"fmt"
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

const (
	Name               = "ytdlp"
	DefaultBinary      = "yt-dlp"
	DefaultLanguage    = "en"
	DefaultTimeoutSecs = 30
)

type Config struct {
	Binary      string `yaml:"binary"`
	Language    string `yaml:"language"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		Binary:      envconfig.String("YTDLP_BINARY"),
		Language:    envconfig.String("YTDLP_LANGUAGE"),
		TimeoutSecs: envconfig.Int("YTDLP_TIMEOUT_SECONDS", 0),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.Binary = envconfig.Or(env.Binary, cfg.Binary)
	cfg.Language = envconfig.Or(env.Language, cfg.Language)
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = env.TimeoutSecs
	}
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.Binary) == "" {
		c.Binary = DefaultBinary
	}
	if strings.TrimSpace(c.Language) == "" {
		c.Language = DefaultLanguage
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

// Validate requires the executable to be resolvable.
func (c *Config) Validate() error {
	if _, err := execx.LookPath(c.Binary); err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	return nil
}
