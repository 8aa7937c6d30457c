package taskwarrior

import (
	"fmt"
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

const (
	Name            = "taskwarrior"
	DefaultBinary   = "task"
	DefaultDataRoot = "./taskdata"
	DefaultList     = "default"
)

type Config struct {
	Binary   string `yaml:"binary"`
	DataRoot string `yaml:"data_root"`
	// MarkdownPath overrides the bundled usage guide served by get_taskwarrior_md.
	MarkdownPath string `yaml:"markdown_path"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		Binary:       envconfig.String("TASK_BINARY"),
		DataRoot:     envconfig.String("TASKDATA_ROOT"),
		MarkdownPath: envconfig.String("TASKWARRIOR_MD_PATH"),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.Binary = envconfig.Or(env.Binary, cfg.Binary)
	cfg.DataRoot = envconfig.Or(env.DataRoot, cfg.DataRoot)
	cfg.MarkdownPath = envconfig.Or(env.MarkdownPath, cfg.MarkdownPath)
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.Binary) == "" {
		c.Binary = DefaultBinary
	}
	if strings.TrimSpace(c.DataRoot) == "" {
		c.DataRoot = DefaultDataRoot
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
