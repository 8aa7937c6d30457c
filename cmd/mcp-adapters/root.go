package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/beeper/mcp-adapters/pkg/adapters"
	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/envconfig"
)

type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "mcp-adapters",
		Short:         "MCP servers for third-party services",
		Long:          "Serve one MCP adapter over stdio. Each subcommand exposes the tools of one service.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "YAML config file with one section per adapter (env MCP_ADAPTERS_CONFIG)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace|debug|info|warn|error (env LOG_LEVEL, default info)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "pretty", "log format: pretty|json")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load (default .env, .env.local)")

	for _, a := range adapters.All() {
		root.AddCommand(newServeCmd(opts, a))
	}
	root.AddCommand(newListCmd(), newVersionCmd())
	return root
}

// newLogger writes to stderr so stdout stays reserved for the protocol stream.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	switch format {
	case "json":
	case "pretty":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// serveLogger loads the env files with a bootstrap logger first, so LOG_LEVEL
// may come from them. The --log-level flag still wins.
func (opts *rootOptions) serveLogger(w io.Writer, adapter string) (zerolog.Logger, error) {
	boot, err := newLogger(w, envconfig.Or("info", opts.logLevel), opts.logFormat)
	if err != nil {
		return boot, err
	}
	envconfig.LoadDotenv(boot.With().Str("adapter", adapter).Logger(), opts.envFiles...)
	level := envconfig.Or(envconfig.Or("info", envconfig.String("LOG_LEVEL")), opts.logLevel)
	log, err := newLogger(w, level, opts.logFormat)
	if err != nil {
		return log, err
	}
	return log.With().Str("adapter", adapter).Logger(), nil
}

func newServeCmd(opts *rootOptions, a adapters.Adapter) *cobra.Command {
	return &cobra.Command{
		Use:   a.Name,
		Short: a.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := opts.serveLogger(cmd.ErrOrStderr(), a.Name)
			if err != nil {
				return err
			}
			file, err := envconfig.LoadFile(envconfig.Or(envconfig.String("MCP_ADAPTERS_CONFIG"), opts.configFile))
			if err != nil {
				return err
			}
			ctx := log.WithContext(cmd.Context())
			built, err := a.Build(ctx, file)
			if err != nil {
				return err
			}
			if built.Closer != nil {
				defer func() {
					if err := built.Closer.Close(); err != nil {
						log.Warn().Err(err).Msg("Failed to release adapter resources")
					}
				}()
			}
			reg := mcpkit.NewRegistry()
			reg.Register(built.Tools...)
			log.Info().Strs("tools", reg.Names()).Msg("Serving MCP adapter over stdio")
			return mcpkit.Serve(ctx, mcpkit.NewServer(a.Name, Tag, reg, log))
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available adapters and their tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, a := range adapters.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", a.Name, a.Description)
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s tools: %s\n", "", strings.Join(a.ToolNames(), ", "))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mcp-adapters %s (commit %s, built %s)\n", Tag, Commit, BuildTime)
		},
	}
}
