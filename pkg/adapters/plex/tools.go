package plex

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

const (
	noUnwatchedMovies = "No unwatched movies found."
	notFound          = "Not Found: Plex resource not found. Check PLEX_LIBRARY_SECTION."
)

// Client queries a Plex Media Server.
type Client struct {
	cfg  *Config
	http *httputil.Client
}

func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	return &Client{cfg: cfg, http: httputil.NewClient(cfg.TimeoutSecs, "")}
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	target := c.cfg.URL + endpoint + "?" + url.Values{"X-Plex-Token": {c.cfg.APIKey}}.Encode()
	resp, err := c.http.Get(ctx, target, map[string]string{"Accept": "application/xml"})
	if err != nil {
		return nil, httputil.Categorize(c.redact(err), notFound, "Error fetching from Plex")
	}
	return resp.Body, nil
}

// redact keeps the token, which travels in the URL, out of error text.
// Status errors keep their type so a 404 still categorizes as not found.
func (c *Client) redact(err error) error {
	if c.cfg.APIKey == "" {
		return err
	}
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		return &httputil.StatusError{Code: statusErr.Code, Body: strings.ReplaceAll(statusErr.Body, c.cfg.APIKey, "REDACTED")}
	}
	return errors.New(strings.ReplaceAll(err.Error(), c.cfg.APIKey, "REDACTED"))
}

// UnwatchedMovies lists the unwatched videos of the configured library section.
func (c *Client) UnwatchedMovies(ctx context.Context) ([]Movie, error) {
	body, err := c.fetch(ctx, "/library/sections/"+url.PathEscape(c.cfg.LibrarySection)+"/unwatched")
	if err != nil {
		return nil, err
	}
	return ParseMovies(body)
}

// Sections lists the server's library sections.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	body, err := c.fetch(ctx, "/library/sections")
	if err != nil {
		return nil, err
	}
	return ParseSections(body)
}

func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{
		{
			Tool: mcp.Tool{
				Name:        "get_unwatched_movies",
				Description: "List unwatched movies in the Plex library with rating, audience rating, year, summary, directors and genres.",
				InputSchema: mcpkit.ObjectSchema(nil),
			},
			Group: Name,
			Execute: func(ctx context.Context, _ map[string]any) (*mcpkit.Result, error) {
				movies, err := client.UnwatchedMovies(ctx)
				if err != nil {
					return nil, err
				}
				if len(movies) == 0 {
					return mcpkit.TextResult(noUnwatchedMovies), nil
				}
				zerolog.Ctx(ctx).Debug().Int("movies", len(movies)).Msg("Fetched unwatched movies")
				return mcpkit.TextResult(FormatMovies(movies)), nil
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "get_library_sections",
				Description: "List the Plex library sections with their key, title and type.",
				InputSchema: mcpkit.ObjectSchema(nil),
			},
			Group: Name,
			Execute: func(ctx context.Context, _ map[string]any) (*mcpkit.Result, error) {
				sections, err := client.Sections(ctx)
				if err != nil {
					return nil, err
				}
				return mcpkit.JSONResult(sections), nil
			},
		},
	}
}
