// Package ytdlp extracts subtitle transcripts from videos through the yt-dlp CLI.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/execx"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

type Client struct {
	cfg    *Config
	runner execx.Runner
	http   *httputil.Client
}

func NewClient(cfg *Config, runner execx.Runner) *Client {
	cfg = cfg.WithDefaults()
	if runner == nil {
		runner = execx.NewLocalRunner()
	}
	return &Client{cfg: cfg, runner: runner, http: httputil.NewClient(cfg.TimeoutSecs, "")}
}

func (c *Client) noTrackMessage() string {
	if c.cfg.Language == DefaultLanguage {
		return "No English automatic subtitles found."
	}
	return fmt.Sprintf("No %s automatic subtitles found.", c.cfg.Language)
}

// Info runs yt-dlp in metadata-only mode for videoURL.
func (c *Client) Info(ctx context.Context, videoURL string) (*VideoInfo, error) {
	res, err := c.runner.Run(ctx, execx.Command{
		Name: c.cfg.Binary,
		Args: []string{"--dump-single-json", "--skip-download", "--no-warnings", "--", videoURL},
	})
	var exitErr *execx.ExitError
	if errors.As(err, &exitErr) {
		return nil, mcpkit.Internal(nil, "Error downloading subtitles for %s: %s", videoURL, strings.TrimSpace(exitErr.Stderr))
	} else if err != nil {
		return nil, mcpkit.Internal(err, "Error downloading subtitles for %s", videoURL)
	}
	info, err := ParseInfo([]byte(res.Stdout))
	if err != nil {
		return nil, mcpkit.Internal(err, "Error reading video metadata for %s", videoURL)
	}
	return info, nil
}

// Subtitles returns the transcript text, or a plain message when none can be produced.
func (c *Client) Subtitles(ctx context.Context, videoURL string) (string, error) {
	info, err := c.Info(ctx, videoURL)
	if err != nil {
		return "", err
	}
	track, ok := info.PickTrack(c.cfg.Language)
	if !ok {
		return c.noTrackMessage(), nil
	}
	zerolog.Ctx(ctx).Debug().Str("video_id", info.ID).Str("ext", track.Ext).Msg("Downloading subtitle track")
	resp, err := c.http.Get(ctx, track.URL, nil)
	if err != nil {
		return "", mcpkit.Internal(err, "Error downloading subtitles for %s", videoURL)
	}
	if len(resp.Body) == 0 {
		return "Failed to retrieve subtitles.", nil
	}
	lines, err := ParseJSON3(resp.Body)
	if err != nil || len(lines) == 0 {
		return "Failed to parse subtitles.", nil
	}
	return Transcript(lines), nil
}

func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{{
		Tool: mcp.Tool{
			Name:        "get_automatic_subtitles_tool",
			Description: "Extracts subtitles (manual if available, otherwise automatic) from a YouTube video and returns them as plain text.",
			InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
				"url": mcpkit.StringProp("The URL of the YouTube video"),
			}, "url"),
		},
		Group: Name,
		Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
			videoURL, err := mcpkit.ReadString(args, "url", true)
			if err != nil {
				return nil, err
			}
			text, err := client.Subtitles(ctx, videoURL)
			if err != nil {
				return nil, err
			}
			return mcpkit.TextResult(text), nil
		},
	}}
}
