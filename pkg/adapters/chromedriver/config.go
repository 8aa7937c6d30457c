package chromedriver

import (
	"os"
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

const (
	Name               = "chromedriver"
	DefaultProfilePath = "./chrome_profile"
	DefaultScreenshot  = "screenshot.png"
)

type Config struct {
	// ProfilePath is the persistent Chromium user-data directory.
	ProfilePath  string `yaml:"profile_path"`
	DownloadPath string `yaml:"download_path"`
	// ChromiumPath selects the browser binary. Empty uses the first one found on the system.
	ChromiumPath string `yaml:"chromium_path"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		ProfilePath:  envconfig.String("CHROME_PROFILE_PATH"),
		DownloadPath: envconfig.String("DEFAULT_DOWNLOAD_PATH"),
		ChromiumPath: envconfig.String("CHROMIUM_PATH"),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.ProfilePath = envconfig.Or(env.ProfilePath, cfg.ProfilePath)
	cfg.DownloadPath = envconfig.Or(env.DownloadPath, cfg.DownloadPath)
	cfg.ChromiumPath = envconfig.Or(env.ChromiumPath, cfg.ChromiumPath)
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.ProfilePath) == "" {
		c.ProfilePath = DefaultProfilePath
	}
	if strings.TrimSpace(c.DownloadPath) == "" {
		if wd, err := os.Getwd(); err == nil {
			c.DownloadPath = wd
		} else {
			c.DownloadPath = "."
		}
	}
	return c
}

func (c *Config) Validate() error {
	return nil
}
