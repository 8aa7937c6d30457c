package fark

import (
	"context"
	"math/rand/v2"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

// Client fetches the front page and interstitial pages.
type Client struct {
	cfg  *Config
	http *httputil.Client
	// Shuffle reorders headlines in place; replaced in tests.
	Shuffle func(n int, swap func(i, j int))
}

func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		cfg:     cfg,
		http:    httputil.NewClient(cfg.TimeoutSecs, cfg.UserAgent),
		Shuffle: rand.Shuffle,
	}
}

// Headlines fetches and parses the front page.
func (c *Client) Headlines(ctx context.Context) ([]Headline, error) {
	resp, err := c.http.Get(ctx, c.cfg.URL, nil)
	if err != nil {
		return nil, mcpkit.Internal(err, "Failed to fetch Fark headlines")
	}
	headlines, err := ParseHeadlines(resp.Body)
	if err != nil {
		return nil, mcpkit.Internal(err, "Failed to parse Fark headlines")
	}
	return headlines, nil
}

// Resolve follows an interstitial redirect page to its destination.
func (c *Client) Resolve(ctx context.Context, target string) (string, error) {
	resp, err := c.http.Get(ctx, target, nil)
	if err != nil {
		return "", mcpkit.Internal(err, "Error resolving URL %s", target)
	}
	return ParseRedirect(resp.Body, target)
}

// Tools returns the Fark tool set.
func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{
		{
			Tool: mcp.Tool{
				Name:        "get_fark_headlines",
				Description: "Fetch headlines from Fark.com as \"url | tag\" strings.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"shuffle": mcpkit.BoolProp("Shuffle the headlines", false),
					"limit":   mcpkit.IntProp("Maximum number of headlines, 0 for no limit", 0),
				}),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				limit, err := mcpkit.ReadIntDefault(args, "limit", 0)
				if err != nil {
					return nil, err
				}
				if limit < 0 {
					return nil, mcpkit.InvalidParams("limit must not be negative")
				}
				headlines, err := client.Headlines(ctx)
				if err != nil {
					return nil, err
				}
				if mcpkit.ReadBool(args, "shuffle", false) {
					client.Shuffle(len(headlines), func(i, j int) {
						headlines[i], headlines[j] = headlines[j], headlines[i]
					})
				}
				out := make([]string, 0, len(headlines))
				for _, h := range headlines {
					out = append(out, h.String())
				}
				if limit > 0 && len(out) > limit {
					out = out[:limit]
				}
				return mcpkit.JSONResult(out), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "resolve_redirect_url",
				Description: "Resolve a redirect URL to its final destination.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"url": mcpkit.StringProp("The URL to resolve"),
				}, "url"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				target, err := mcpkit.ReadString(args, "url", true)
				if err != nil {
					return nil, err
				}
				if u, err := url.Parse(target); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
					return nil, mcpkit.InvalidParams("url must be an http or https URL")
				}
				resolved, err := client.Resolve(ctx, target)
				if err != nil {
					return nil, err
				}
				return mcpkit.TextResult(resolved), nil
			},
		},
	}
}
