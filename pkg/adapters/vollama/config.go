package vollama

import (
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name                   = "vollama"
	DefaultModel           = "gemma3:4b-it-q8_0"
	DefaultTimeoutSecs     = 420
	DefaultDownloadTimeout = 30
	DefaultSystemPrompt    = "You are a helpful assistant."
	downloadUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"
)

// Config points at an OpenAI-compatible endpoint served by Ollama.
type Config struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		BaseURL:     envconfig.String("OLLAMA_BASE_URL"),
		APIKey:      envconfig.String("OLLAMA_API_KEY"),
		Model:       envconfig.String("VOLLAMA_MODEL"),
		TimeoutSecs: envconfig.Int("VOLLAMA_TIMEOUT_SECONDS", 0),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.BaseURL = envconfig.Or(env.BaseURL, cfg.BaseURL)
	cfg.APIKey = envconfig.Or(env.APIKey, cfg.APIKey)
	cfg.Model = envconfig.Or(env.Model, cfg.Model)
	if cfg.TimeoutSecs <= 0 {
		cfg.TimeoutSecs = env.TimeoutSecs
	}
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if strings.TrimSpace(c.APIKey) == "" {
		// Ollama ignores the key but the client requires one.
		c.APIKey = "ollama"
	}
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

func (c *Config) Validate() error {
	return envconfig.Require(Name, "OLLAMA_BASE_URL", c.BaseURL)
}
