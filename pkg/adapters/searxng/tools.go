package searxng

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

type noResults struct {
	Error string `json:"error"`
}

var emptyMessages = map[Category]string{
	CategoryGeneral: "No results found for the given query.",
	CategoryNews:    "No news articles found for the given query.",
	CategoryFiles:   "No files found for the given query.",
}

type searchArgs struct {
	query      string
	timeRange  string
	maxResults int
}

func readSearchArgs(args map[string]any, withTimeRange bool) (*searchArgs, error) {
	query, err := mcpkit.ReadString(args, "query", true)
	if err != nil {
		return nil, err
	}
	maxResults, err := mcpkit.ReadIntDefault(args, "max_results", DefaultMaxResults)
	if err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		return nil, mcpkit.InvalidParams("max_results must be greater than 0.")
	}
	out := &searchArgs{query: query, maxResults: maxResults}
	if withTimeRange {
		out.timeRange = strings.ToLower(mcpkit.ReadStringDefault(args, "time_range", ""))
		if out.timeRange != "" && !slices.Contains(TimeRanges, out.timeRange) {
			return nil, mcpkit.InvalidParams("time_range must be one of %s.", strings.Join(TimeRanges, ", "))
		}
	}
	return out, nil
}

func searchTool(client *Client, name, description string, category Category) *mcpkit.Tool {
	props := map[string]mcpkit.Prop{
		"query":       mcpkit.StringProp("The search query"),
		"max_results": mcpkit.IntProp("Maximum number of results to return", DefaultMaxResults),
	}
	withTimeRange := category != CategoryGeneral
	if withTimeRange {
		props["time_range"] = mcpkit.EnumProp("Restrict results to a recent time window", TimeRanges...)
	}
	return &mcpkit.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: mcpkit.ObjectSchema(props, "query"),
		},
		Group: Name,
		Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
			params, err := readSearchArgs(args, withTimeRange)
			if err != nil {
				return nil, err
			}
			body, err := client.Search(ctx, params.query, category, params.timeRange)
			if err != nil {
				return nil, err
			}
			var payload any
			var count int
			if category == CategoryFiles {
				results, err := ParseFileResults(body, params.maxResults)
				if err != nil {
					return nil, mcpkit.Internal(err, "Error parsing search results")
				}
				payload, count = results, len(results)
			} else {
				results, err := ParseResults(body, params.maxResults)
				if err != nil {
					return nil, mcpkit.Internal(err, "Error parsing search results")
				}
				payload, count = results, len(results)
			}
			zerolog.Ctx(ctx).Debug().
				Str("category", string(category)).
				Int("results", count).
				Msg("SearXNG search completed")
			if count == 0 {
				payload = []noResults{{Error: emptyMessages[category]}}
			}
			return mcpkit.JSONResult(payload), nil
		},
	}
}

func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{
		searchTool(client, "searxng_search",
			"Search the web through SearXNG and return a JSON list of results with title, url and content.",
			CategoryGeneral),
		searchTool(client, "searxng_news_search",
			"Search news articles through SearXNG, optionally restricted to a time range.",
			CategoryNews),
		searchTool(client, "searxng_file_search",
			"Search files and torrents through SearXNG and return title, url, magnet link, seeders and leechers.",
			CategoryFiles),
		{
			Tool: mcp.Tool{
				Name:        "fetch_and_clean",
				Description: "Fetch a URL and return its readable content: PDFs as plain text, web pages as Markdown.",
				InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
					"url":        mcpkit.StringProp("The URL to fetch"),
					"max_tokens": mcpkit.IntProp("Truncate the output to this many tokens (0 keeps everything)", 0),
				}, "url"),
			},
			Group: Name,
			Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
				target, err := mcpkit.ReadString(args, "url", true)
				if err != nil {
					return nil, err
				}
				if u, err := url.Parse(target); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
					return nil, mcpkit.InvalidParams("url must be an absolute http(s) URL.")
				}
				maxTokens, err := mcpkit.ReadIntDefault(args, "max_tokens", 0)
				if err != nil {
					return nil, err
				}
				if maxTokens < 0 {
					return nil, mcpkit.InvalidParams("max_tokens must not be negative.")
				}
				text, err := client.FetchAndClean(ctx, target, maxTokens)
				if err != nil {
					return nil, err
				}
				return mcpkit.TextResult(text), nil
			},
		},
	}
}
