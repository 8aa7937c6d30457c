// Package taskwarrior exposes the task CLI with one data directory per task list.
package taskwarrior

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

//go:embed taskwarrior.md
var bundledGuide string

// Store manages task list directories under a root and runs task against them.
type Store struct {
	cfg    *Config
	runner execx.Runner
}

func NewStore(cfg *Config, runner execx.Runner) *Store {
	if runner == nil {
		runner = execx.NewLocalRunner()
	}
	return &Store{cfg: cfg.WithDefaults(), runner: runner}
}

// sanitize reduces name to its final path element.
func sanitize(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return "", mcpkit.InvalidParams("Invalid task list name '%s'.", name)
	}
	return base, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.cfg.DataRoot, name)
}

// Lists returns the task list names in sorted order.
func (s *Store) Lists() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.DataRoot)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, mcpkit.Internal(err, "Error reading task lists")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *Store) Create(name string) (string, error) {
	clean, err := sanitize(name)
	if err != nil {
		return "", err
	}
	dir := s.path(clean)
	if _, err = os.Stat(dir); err == nil {
		return "", mcpkit.InvalidParams("Task list '%s' already exists.", name)
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", mcpkit.Internal(err, "Error creating task list")
	}
	return fmt.Sprintf("Task list '%s' created successfully.", name), nil
}

func (s *Store) Delete(name string) (string, error) {
	clean, err := sanitize(name)
	if err != nil {
		return "", err
	}
	if clean == DefaultList {
		return "", mcpkit.InvalidParams("Cannot delete the default task list.")
	}
	dir := s.path(clean)
	if _, err = os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return "", mcpkit.InvalidParams("Task list '%s' does not exist.", name)
	}
	if err = os.RemoveAll(dir); err != nil {
		return "", mcpkit.Internal(err, "Error deleting task list")
	}
	return fmt.Sprintf("Task list '%s' deleted successfully.", name), nil
}

// Run executes task with args inside the named list, creating its directory on demand.
func (s *Store) Run(ctx context.Context, list string, args []string) (string, error) {
	clean, err := sanitize(list)
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(s.path(clean))
	if err != nil {
		return "", mcpkit.Internal(err, "Error resolving tasklist directory")
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", mcpkit.Internal(err, "Error creating tasklist directory")
	}

	cmd := execx.Command{
		Name:  s.cfg.Binary,
		Args:  args,
		Env:   []string{"TASKDATA=" + dir},
		Stdin: "yes\n",
	}
	res, err := s.runner.Run(ctx, cmd)
	var exitErr *execx.ExitError
	switch {
	case errors.As(err, &exitErr):
		zerolog.Ctx(ctx).Debug().Str("tasklist", clean).Int("exit_code", exitErr.ExitCode).Msg("task exited non-zero")
		return "", mcpkit.Internal(nil, "%s", strings.TrimSpace(exitErr.Stderr))
	case errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return "", mcpkit.Internal(nil, "Error: Taskwarrior binary not found at %s", s.cfg.Binary)
	case err != nil:
		return "", mcpkit.Internal(err, "Error running task")
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Guide returns the usage guide, preferring the configured override file.
func (s *Store) Guide() (string, error) {
	if s.cfg.MarkdownPath == "" {
		return bundledGuide, nil
	}
	data, err := os.ReadFile(s.cfg.MarkdownPath)
	if errors.Is(err, os.ErrNotExist) {
		return "", mcpkit.Internal(nil, "Error: taskwarrior.md not found at %s.", s.cfg.MarkdownPath)
	} else if err != nil {
		return "", mcpkit.Internal(err, "Error reading taskwarrior.md")
	}
	return string(data), nil
}

func tasklistProp() mcpkit.Prop {
	p := mcpkit.StringProp("The task list to operate on")
	p["default"] = DefaultList
	return p
}

func Tools(store *Store) []*mcpkit.Tool {
	nameOnly := mcpkit.ObjectSchema(map[string]mcpkit.Prop{
		"name": mcpkit.StringProp("The task list name"),
	}, "name")
	return []*mcpkit.Tool{
		{
			Tool: mcp.Tool{
				Name:        "list_tasklists",
				Description: "Returns a comma-separated list of available task lists.",
				InputSchema: mcpkit.ObjectSchema(nil),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				names, err := store.Lists()
				if err != nil {
					return nil, err
				}
				if len(names) == 0 {
					return mcpkit.TextResult("No task lists found."), nil
				}
				return mcpkit.TextResult(strings.Join(names, ", ")), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "create_tasklist",
				Description: "Creates a new task list.",
				InputSchema: nameOnly,
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				name, err := mcpkit.ReadString(args, "name", true)
				if err != nil {
					return nil, err
				}
				msg, err := store.Create(name)
				if err != nil {
					return nil, err
				}
				return mcpkit.TextResult(msg), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_tasklist",
				Description: "Deletes a task list and all of its tasks. The default list cannot be deleted.",
				InputSchema: nameOnly,
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				name, err := mcpkit.ReadString(args, "name", true)
				if err != nil {
					return nil, err
				}
				msg, err := store.Delete(name)
				if err != nil {
					return nil, err
				}
				return mcpkit.TextResult(msg), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "list",
				Description: "Lists tasks in a task list, optionally filtered by Taskwarrior filter terms.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"filter_terms": mcpkit.StringArrayProp("Filter terms such as project:Home or +work"),
					"tasklist":     tasklistProp(),
				}),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				terms, err := mcpkit.ReadStringSlice(args, "filter_terms", false)
				if err != nil {
					return nil, err
				}
				list := mcpkit.ReadStringDefault(args, "tasklist", DefaultList)
				out, err := store.Run(ctx, list, append([]string{"list"}, terms...))
				if err != nil {
					return nil, err
				}
				if out == "" {
					return mcpkit.TextResult("No tasks found matching the filter criteria."), nil
				}
				return mcpkit.TextResult(out), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name: "run",
				Description: "Runs an arbitrary Taskwarrior command in a task list, for example " +
					`"add Buy milk project:Home priority:H due:tomorrow". ` +
					"Consult get_taskwarrior_md and list_tasklists before the first command.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"command":  mcpkit.StringProp("The Taskwarrior command and its arguments"),
					"tasklist": tasklistProp(),
				}, "command"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				command, err := mcpkit.ReadString(args, "command", true)
				if err != nil {
					return nil, err
				}
				list := mcpkit.ReadStringDefault(args, "tasklist", DefaultList)
				out, err := store.Run(ctx, list, strings.Fields(command))
				if err != nil {
					return nil, err
				}
				if out == "" {
					return mcpkit.TextResult("No output from command."), nil
				}
				return mcpkit.TextResult(out), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "get_taskwarrior_md",
				Description: "Returns a refined instruction set for operating Taskwarrior. Always consult this before run.",
				InputSchema: mcpkit.ObjectSchema(nil),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				guide, err := store.Guide()
				if err != nil {
					return nil, err
				}
				return mcpkit.TextResult(guide), nil
			},
		},
	}
}
