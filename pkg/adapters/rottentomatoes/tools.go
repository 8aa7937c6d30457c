package rottentomatoes

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

// Client scrapes the popular at-home browse page and the linked movie pages.
type Client struct {
	cfg  *Config
	http *httputil.Client
}

func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	return &Client{cfg: cfg, http: httputil.NewClient(cfg.TimeoutSecs, cfg.UserAgent)}
}

// Popular returns the browse page tiles. Up to limit movies (all when limit
// is 0) are enriched with details; a failed detail fetch keeps the summary.
func (c *Client) Popular(ctx context.Context, limit int) ([]Movie, error) {
	log := zerolog.Ctx(ctx)
	resp, err := c.http.Get(ctx, c.cfg.BaseURL+BrowsePath, nil)
	if err != nil {
		return nil, mcpkit.Internal(err, "Error fetching URL")
	}
	movies, err := ParseBrowse(resp.Body, c.cfg.BaseURL)
	if err != nil {
		return nil, mcpkit.Internal(err, "Error during scraping")
	}
	if len(movies) == 0 {
		log.Warn().Msg("Could not find movie containers on the browse page")
		return movies, nil
	}
	if limit > 0 && len(movies) > limit {
		movies = movies[:limit]
	}
	for i := range movies {
		movie := &movies[i]
		if movie.MovieURL == mcpkit.NotAvailable {
			log.Debug().Str("title", movie.Title).Msg("Movie URL not available")
			continue
		}
		details, err := c.details(ctx, movie.MovieURL)
		if err != nil {
			log.Warn().Err(err).Str("title", movie.Title).Str("url", movie.MovieURL).Msg("Could not retrieve movie details")
			continue
		}
		movie.Details = details
	}
	return movies, nil
}

func (c *Client) details(ctx context.Context, movieURL string) (*Details, error) {
	resp, err := c.http.Get(ctx, movieURL, nil)
	if err != nil {
		return nil, err
	}
	return ParseDetails(resp.Body)
}

func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{{
		Tool: mcp.Tool{
			Name:        "get_rotten_tomatoes_movies",
			Description: "List popular movies available at home on Rotten Tomatoes with critic and audience scores, streaming date, genre, rating, cast, directors and description.",
			InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
				"limit": mcpkit.IntProp("Maximum number of movies to return, 0 for all", 0),
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
			movies, err := client.Popular(ctx, limit)
			if err != nil {
				return nil, err
			}
			return mcpkit.JSONResult(movies), nil
		},
	}}
}
