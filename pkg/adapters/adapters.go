// Package adapters lists every MCP adapter this module can serve.
package adapters

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/adapters/bookwyrm"
	"github.com/beeper/mcp-adapters/pkg/adapters/chromedriver"
	"github.com/beeper/mcp-adapters/pkg/adapters/doctl"
	"github.com/beeper/mcp-adapters/pkg/adapters/fark"
	"github.com/beeper/mcp-adapters/pkg/adapters/plex"
	"github.com/beeper/mcp-adapters/pkg/adapters/rottentomatoes"
	"github.com/beeper/mcp-adapters/pkg/adapters/saleshistory"
	"github.com/beeper/mcp-adapters/pkg/adapters/searxng"
	"github.com/beeper/mcp-adapters/pkg/adapters/taskwarrior"
	"github.com/beeper/mcp-adapters/pkg/adapters/terminalshop"
	"github.com/beeper/mcp-adapters/pkg/adapters/vollama"
	"github.com/beeper/mcp-adapters/pkg/adapters/ytdlp"
	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

// Built is a ready-to-serve adapter.
type Built struct {
	Tools []*mcpkit.Tool
	// Closer releases adapter resources on shutdown. May be nil.
	Closer io.Closer
}

// Adapter describes one MCP server.
type Adapter struct {
	Name        string
	Description string

	build func(file *envconfig.File, validate bool) (*Built, error)
}

// Build resolves configuration and fails fast when it is incomplete.
func (a Adapter) Build(ctx context.Context, file *envconfig.File) (*Built, error) {
	built, err := a.build(file, true)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("adapter", a.Name).Int("tool_count", len(built.Tools)).Msg("Built adapter")
	return built, nil
}

// ToolNames lists the adapter's tools without requiring its configuration to be complete.
func (a Adapter) ToolNames() []string {
	built, err := a.build(nil, false)
	if err != nil {
		return nil
	}
	names := make([]string, len(built.Tools))
	for i, t := range built.Tools {
		names[i] = t.Name
	}
	return names
}

type config[C any] interface {
	*C
	Validate() error
}

// resolve layers the file section under environment defaults and optionally validates the result.
func resolve[C any, P config[C]](file *envconfig.File, name string, apply func(*C) *C, validate bool) (*C, error) {
	cfg := new(C)
	if err := file.Section(name, cfg); err != nil {
		return nil, err
	}
	cfg = apply(cfg)
	if !validate {
		return cfg, nil
	}
	if err := P(cfg).Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func tools(t []*mcpkit.Tool) *Built {
	return &Built{Tools: t}
}

var all = []Adapter{
	{
		Name:        bookwyrm.Name,
		Description: "Search books and read shelves on a BookWyrm instance",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[bookwyrm.Config](file, bookwyrm.Name, bookwyrm.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(bookwyrm.Tools(bookwyrm.NewClient(cfg))), nil
		},
	},
	{
		Name:        chromedriver.Name,
		Description: "Automate a Chromium browser session",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[chromedriver.Config](file, chromedriver.Name, chromedriver.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			m := chromedriver.NewManager(cfg, chromedriver.LaunchRod)
			return &Built{Tools: chromedriver.Tools(m), Closer: m}, nil
		},
	},
	{
		Name:        doctl.Name,
		Description: "Manage DigitalOcean droplets with doctl",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[doctl.Config](file, doctl.Name, doctl.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(doctl.Tools(doctl.NewClient(cfg, execx.NewLocalRunner()))), nil
		},
	},
	{
		Name:        fark.Name,
		Description: "Read Fark headlines",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[fark.Config](file, fark.Name, fark.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(fark.Tools(fark.NewClient(cfg))), nil
		},
	},
	{
		Name:        plex.Name,
		Description: "Browse a Plex media server library",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[plex.Config](file, plex.Name, plex.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(plex.Tools(plex.NewClient(cfg))), nil
		},
	},
	{
		Name:        rottentomatoes.Name,
		Description: "Look up Rotten Tomatoes listings",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[rottentomatoes.Config](file, rottentomatoes.Name, rottentomatoes.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(rottentomatoes.Tools(rottentomatoes.NewClient(cfg))), nil
		},
	},
	{
		Name:        saleshistory.Name,
		Description: "Summarize sold eBay listings",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[saleshistory.Config](file, saleshistory.Name, saleshistory.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(saleshistory.Tools(saleshistory.NewClient(cfg))), nil
		},
	},
	{
		Name:        searxng.Name,
		Description: "Search the web through a SearXNG instance",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[searxng.Config](file, searxng.Name, searxng.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(searxng.Tools(searxng.NewClient(cfg))), nil
		},
	},
	{
		Name:        taskwarrior.Name,
		Description: "Manage Taskwarrior task lists",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[taskwarrior.Config](file, taskwarrior.Name, taskwarrior.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(taskwarrior.Tools(taskwarrior.NewStore(cfg, execx.NewLocalRunner()))), nil
		},
	},
	{
		Name:        terminalshop.Name,
		Description: "Browse the terminal.shop catalog and account",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[terminalshop.Config](file, terminalshop.Name, terminalshop.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(terminalshop.Tools(terminalshop.NewClient(cfg))), nil
		},
	},
	{
		Name:        vollama.Name,
		Description: "Describe images with an Ollama vision model",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[vollama.Config](file, vollama.Name, vollama.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(vollama.Tools(vollama.NewClient(cfg))), nil
		},
	},
	{
		Name:        ytdlp.Name,
		Description: "Fetch video subtitles with yt-dlp",
		build: func(file *envconfig.File, validate bool) (*Built, error) {
			cfg, err := resolve[ytdlp.Config](file, ytdlp.Name, ytdlp.ApplyEnvDefaults, validate)
			if err != nil {
				return nil, err
			}
			return tools(ytdlp.Tools(ytdlp.NewClient(cfg, execx.NewLocalRunner()))), nil
		},
	},
}

// All returns the adapters sorted by name.
func All() []Adapter {
	out := make([]Adapter, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds an adapter by name.
func Lookup(name string) (Adapter, error) {
	for _, a := range all {
		if a.Name == name {
			return a, nil
		}
	}
	return Adapter{}, fmt.Errorf("unknown adapter %q", name)
}
