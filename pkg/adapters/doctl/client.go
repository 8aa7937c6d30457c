package doctl

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

var createdPattern = regexp.MustCompile(`Droplet (.+) created`)

// Client drives the doctl and ssh executables.
type Client struct {
	cfg    *Config
	runner execx.Runner
	Now    func() time.Time
	Sleep  SleepFunc
}

func NewClient(cfg *Config, runner execx.Runner) *Client {
	if runner == nil {
		runner = execx.NewLocalRunner()
	}
	return &Client{cfg: cfg.WithDefaults(), runner: runner, Now: time.Now, Sleep: sleepContext}
}

// CreateOptions holds create_droplet arguments. Empty fields take configured defaults.
type CreateOptions struct {
	Name   string
	Region string
	Size   string
	Image  string
	SSHKey string
}

func (c *Client) doctl(ctx context.Context, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, execx.Command{Name: c.cfg.Binary, Args: args})
	var exitErr *execx.ExitError
	if errors.As(err, &exitErr) {
		return "", mcpkit.Internal(nil, "Error executing doctl command: %s", strings.TrimSpace(exitErr.Stderr))
	} else if err != nil {
		return "", mcpkit.Internal(err, "Error executing doctl command")
	}
	return strings.TrimSpace(res.Stdout), nil
}

func (c *Client) ssh(ctx context.Context, ip, command string) (string, error) {
	res, err := c.runner.Run(ctx, execx.Command{
		Name: c.cfg.SSHBinary,
		Args: []string{"-o", "StrictHostKeyChecking=no", c.cfg.SSHUser + "@" + ip, command},
	})
	var exitErr *execx.ExitError
	if errors.As(err, &exitErr) {
		return "", mcpkit.Internal(nil, "Error executing SSH command: %s", strings.TrimSpace(exitErr.Stderr))
	} else if err != nil {
		return "", mcpkit.Internal(err, "Error executing SSH command")
	}
	return strings.TrimSpace(res.Stdout), nil
}

// GeneratedName builds <os>-<region>-<YYYYMMDDhhmmss> from the image slug.
func (c *Client) GeneratedName(image, region string) string {
	osName, _, _ := strings.Cut(image, "-")
	return fmt.Sprintf("%s-%s-%s", osName, region, c.Now().Format("20060102150405"))
}

func (c *Client) CreateDroplet(ctx context.Context, opts CreateOptions) (string, error) {
	region := orDefault(opts.Region, c.cfg.Region)
	size := orDefault(opts.Size, c.cfg.Size)
	image := orDefault(opts.Image, c.cfg.Image)
	sshKey := orDefault(opts.SSHKey, c.cfg.SSHKey)
	name := opts.Name
	if name == "" {
		name = c.GeneratedName(image, region)
	}
	args := []string{"compute", "droplet", "create", name, "--region", region, "--size", size, "--image", image}
	if sshKey != "" {
		args = append(args, "--ssh-keys", sshKey)
	}
	args = append(args, "--wait")
	out, err := c.doctl(ctx, args...)
	if err != nil {
		return "", err
	}
	if m := createdPattern.FindStringSubmatch(out); m != nil {
		return strings.TrimSpace(m[1]), nil
	}
	return name, nil
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

// DropletIP resolves the public IPv4 address of a droplet.
func (c *Client) DropletIP(ctx context.Context, id int) (string, error) {
	out, err := c.doctl(ctx, "compute", "droplet", "get", strconv.Itoa(id), "--format", "PublicIPv4", "--no-header")
	if err != nil {
		return "", mcpkit.Internal(err, "Could not retrieve droplet IP")
	}
	if out == "" {
		return "", mcpkit.Internal(nil, "Could not retrieve droplet IP: droplet %d has no public IPv4 address", id)
	}
	return out, nil
}

func (c *Client) ExecuteOnDroplet(ctx context.Context, id int, command string) (string, error) {
	ip, err := c.DropletIP(ctx, id)
	if err != nil {
		return "", err
	}
	return c.ssh(ctx, ip, command)
}

// CheckResponsiveness polls `hostname` over ssh. Failing to resolve the IP ends the poll with false.
func (c *Client) CheckResponsiveness(ctx context.Context, id, tries int, interval time.Duration) (bool, error) {
	log := zerolog.Ctx(ctx)
	errNoIP := errors.New("no droplet ip")
	ok, err := Poll(ctx, tries, interval, c.Sleep, func(ctx context.Context, attempt int) (bool, error) {
		ip, err := c.DropletIP(ctx, id)
		if err != nil {
			log.Debug().Err(err).Int("droplet_id", id).Msg("Droplet IP lookup failed")
			return false, errNoIP
		}
		if _, err = c.ssh(ctx, ip, "hostname"); err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Int("droplet_id", id).Msg("Droplet not responsive yet")
			return false, nil
		}
		return true, nil
	})
	if errors.Is(err, errNoIP) {
		return false, nil
	}
	return ok, err
}
