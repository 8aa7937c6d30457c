package plex

import (
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name                  = "plex"
	DefaultLibrarySection = "1"
	DefaultTimeoutSecs    = 10
)

// Config holds the Plex server address and token. URL and APIKey are mandatory.
type Config struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	LibrarySection string `yaml:"library_section"`
	TimeoutSecs    int    `yaml:"timeout_seconds"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		URL:            envconfig.String("PLEX_URL"),
		APIKey:         envconfig.String("PLEX_API_KEY"),
		LibrarySection: envconfig.String("PLEX_LIBRARY_SECTION"),
		TimeoutSecs:    envconfig.Int("PLEX_TIMEOUT_SECONDS", 0),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.URL = envconfig.Or(env.URL, cfg.URL)
	cfg.APIKey = envconfig.Or(env.APIKey, cfg.APIKey)
	cfg.LibrarySection = envconfig.Or(env.LibrarySection, cfg.LibrarySection)
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = env.TimeoutSecs
	}
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	if strings.TrimSpace(c.LibrarySection) == "" {
		c.LibrarySection = DefaultLibrarySection
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

// Validate fails when a mandatory value is missing.
func (c *Config) Validate() error {
	return envconfig.Require(Name, "PLEX_URL", c.URL, "PLEX_API_KEY", c.APIKey)
}
