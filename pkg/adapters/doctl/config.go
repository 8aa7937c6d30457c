package doctl

import (
	"fmt"
	"strings"

	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

const (
	Name           = "doctl"
	DefaultBinary  = "doctl"
	DefaultSSH     = "ssh"
	DefaultSSHUser = "root"
	DefaultRegion  = "tor1"
	DefaultSize    = "s-1vcpu-1gb"
	DefaultImage   = "ubuntu-24-04-x64"
)

type Config struct {
	Binary    string `yaml:"binary"`
	SSHBinary string `yaml:"ssh_binary"`
	SSHUser   string `yaml:"ssh_user"`
	Region    string `yaml:"default_region"`
	Size      string `yaml:"default_size"`
	Image     string `yaml:"default_image"`
	// SSHKey is the key ID or fingerprint attached to new droplets. Empty attaches none.
	SSHKey string `yaml:"default_ssh_key"`
}

func ConfigFromEnv() *Config {
	return (&Config{
		Binary:    envconfig.String("DOCTL_BINARY"),
		SSHBinary: envconfig.String("SSH_BINARY"),
		SSHUser:   envconfig.String("DOCTL_SSH_USER"),
		Region:    envconfig.String("DOCTL_DEFAULT_REGION"),
		Size:      envconfig.String("DOCTL_DEFAULT_SIZE"),
		Image:     envconfig.String("DOCTL_DEFAULT_IMAGE"),
		SSHKey:    envconfig.String("DOCTL_DEFAULT_SSH_KEY"),
	}).WithDefaults()
}

func ApplyEnvDefaults(cfg *Config) *Config {
	if cfg == nil {
		return ConfigFromEnv()
	}
	env := ConfigFromEnv()
	cfg.Binary = envconfig.Or(env.Binary, cfg.Binary)
	cfg.SSHBinary = envconfig.Or(env.SSHBinary, cfg.SSHBinary)
	cfg.SSHUser = envconfig.Or(env.SSHUser, cfg.SSHUser)
	cfg.Region = envconfig.Or(env.Region, cfg.Region)
	cfg.Size = envconfig.Or(env.Size, cfg.Size)
	cfg.Image = envconfig.Or(env.Image, cfg.Image)
	cfg.SSHKey = envconfig.Or(env.SSHKey, cfg.SSHKey)
	return cfg.WithDefaults()
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	defaults := map[*string]string{
		&c.Binary:    DefaultBinary,
		&c.SSHBinary: DefaultSSH,
		&c.SSHUser:   DefaultSSHUser,
		&c.Region:    DefaultRegion,
		&c.Size:      DefaultSize,
		&c.Image:     DefaultImage,
	}
	for field, def := range defaults {
		if strings.TrimSpace(*field) == "" {
			*field = def
		}
	}
	c.SSHKey = strings.TrimSpace(c.SSHKey)
	return c
}

// Validate requires the doctl executable to be resolvable.
func (c *Config) Validate() error {
	if _, err := execx.LookPath(c.Binary); err != nil {
		return fmt.Errorf("%s: %w", Name, err)
	}
	return nil
}
