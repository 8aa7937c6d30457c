package saleshistory

import (
	"context"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

// Client searches completed and sold eBay listings.
type Client struct {
	cfg  *Config
	http *httputil.Client
}

func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	return &Client{cfg: cfg, http: httputil.NewClient(cfg.TimeoutSecs, cfg.UserAgent)}
}

// SearchURL builds the sold-listings search URL for term.
func (c *Client) SearchURL(term string) string {
	q := url.Values{}
	q.Set("_nkw", term)
	q.Set("LH_Complete", "1")
	q.Set("LH_Sold", "1")
	return c.cfg.BaseURL + "/sch/i.html?" + q.Encode()
}

// SoldListings fetches and parses the sold listings for term.
func (c *Client) SoldListings(ctx context.Context, term string) ([]Sale, error) {
	resp, err := c.http.Get(ctx, c.SearchURL(term), nil)
	if err != nil {
		return nil, mcpkit.Internal(err, "Request error")
	}
	sales, err := ParseSales(resp.Body, c.cfg.BaseURL)
	if err != nil {
		return nil, mcpkit.Internal(err, "parsing eBay results")
	}
	zerolog.Ctx(ctx).Debug().Str("term", term).Int("sales", len(sales)).Msg("Parsed eBay sold listings")
	return sales, nil
}

func Tools(client *Client) []*mcpkit.Tool {
	return []*mcpkit.Tool{{
		Tool: mcp.Tool{
			Name:        "get_sales_history",
			Description: "Get recent sold eBay listings for a search term as a JSON string with item, sold date, price, delivery price, URL and image.",
			InputSchema: mcpkit.ObjectSchema(map[string]mcpkit.Prop{
				"search_term": mcpkit.StringProp("The term to search for on eBay"),
			}, "search_term"),
		},
		Group: Name,
		Execute: func(ctx context.Context, args map[string]any) (*mcpkit.Result, error) {
			term, err := mcpkit.ReadString(args, "search_term", false)
			if err != nil {
				return nil, err
			}
			if term == "" {
				return nil, mcpkit.InvalidParams("Please provide a search term.")
			}
			sales, err := client.SoldListings(ctx, term)
			if err != nil {
				return nil, err
			}
			return mcpkit.IndentedJSONResult(sales, "    "), nil
		},
	}}
}
