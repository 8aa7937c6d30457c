package searxng

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
	"github.com/beeper/mcp-adapters/pkg/shared/textconv"
)

// Category selects the SearXNG search tab.
type Category string

const (
	CategoryGeneral Category = "general"
	CategoryNews    Category = "news"
	CategoryFiles   Category = "files"
)

// TimeRanges are the accepted time_range values.
var TimeRanges = []string{"day", "week", "month", "year"}

var searchHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Cache-Control":             "no-cache",
	"Pragma":                    "no-cache",
	"Upgrade-Insecure-Requests": "1",
}

// Client searches one SearXNG instance and fetches result pages.
type Client struct {
	cfg  *Config
	http *httputil.Client
}

func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	client := httputil.NewClient(cfg.TimeoutSecs, cfg.UserAgent)
	if cfg.InsecureSkipVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed instances
		client.HTTP = &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second, Transport: transport}
	}
	return &Client{cfg: cfg, http: client}
}

// Search posts the query form and returns the raw results page.
func (c *Client) Search(ctx context.Context, query string, category Category, timeRange string) ([]byte, error) {
	form := url.Values{
		"q":          {query},
		"categories": {string(category)},
		"language":   {"auto"},
		"time_range": {timeRange},
		"safesearch": {"0"},
		"theme":      {"simple"},
	}
	resp, err := c.http.PostForm(ctx, c.cfg.BaseURL+"/search", form, searchHeaders)
	if err != nil {
		return nil, mcpkit.Internal(err, "Error during search")
	}
	return resp.Body, nil
}

// FetchAndClean downloads target and converts it to text: PDFs are extracted,
// anything else is treated as HTML and converted to Markdown.
func (c *Client) FetchAndClean(ctx context.Context, target string, maxTokens int) (string, error) {
	resp, err := c.http.Get(ctx, target, nil)
	if err != nil {
		return "", mcpkit.Internal(err, "Error fetching URL")
	}
	var text string
	if textconv.IsPDF(resp.ContentType, resp.Body) {
		text, err = textconv.PDFToText(resp.Body)
	} else {
		text, err = textconv.HTMLToMarkdown(string(resp.Body))
	}
	if err != nil {
		return "", mcpkit.Internal(err, "Error cleaning %s", target)
	}
	text, _ = textconv.TruncateTokens(text, maxTokens)
	return text, nil
}
