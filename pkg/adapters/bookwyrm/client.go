package bookwyrm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

// Client talks to one BookWyrm instance.
type Client struct {
	cfg  *Config
	http *httputil.Client
}

// NewClient creates a client for cfg.
func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	return &Client{cfg: cfg, http: httputil.NewClient(cfg.TimeoutSecs, cfg.UserAgent)}
}

func (c *Client) userURL(username, suffix string) string {
	return fmt.Sprintf("%s/user/%s/%s", c.cfg.BaseURL, url.PathEscape(username), suffix)
}

// SearchBooks returns the raw search.json document for query.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]byte, error) {
	q := url.Values{"q": {query}, "type": {"book"}}
	resp, err := c.http.Get(ctx, c.cfg.BaseURL+"/search.json?"+q.Encode(), map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, mcpkit.Internal(err, "searching BookWyrm")
	}
	if !json.Valid(resp.Body) {
		return nil, mcpkit.Internal(nil, "BookWyrm search returned a non-JSON response")
	}
	return resp.Body, nil
}

// ReadShelf returns the ActivityPub document of a user's read shelf.
func (c *Client) ReadShelf(ctx context.Context, username string) ([]byte, error) {
	resp, err := c.http.Get(ctx, c.userURL(username, "shelf/read.json"), map[string]string{
		"Accept": "application/activity+json",
	})
	if err != nil {
		return nil, httputil.Categorize(err,
			fmt.Sprintf("User or read shelf not found for %s", username),
			fmt.Sprintf("fetching read shelf for %s", username))
	}
	if !json.Valid(resp.Body) {
		return nil, mcpkit.Internal(nil, "read shelf for %s is not valid JSON", username)
	}
	return resp.Body, nil
}

// ReviewsPage returns the HTML of a user's reviews and comments page.
func (c *Client) ReviewsPage(ctx context.Context, username string) ([]byte, error) {
	resp, err := c.http.Get(ctx, c.userURL(username, "reviews-comments"), nil)
	if err != nil {
		return nil, httputil.Categorize(err,
			fmt.Sprintf("User reviews not found for %s", username),
			fmt.Sprintf("fetching reviews for %s", username))
	}
	return resp.Body, nil
}

// ReadBooksPage returns the HTML of one page of a user's read books list.
func (c *Client) ReadBooksPage(ctx context.Context, username string, page int) ([]byte, error) {
	target := c.userURL(username, "books/read") + "?page=" + strconv.Itoa(page)
	resp, err := c.http.Get(ctx, target, nil)
	if err != nil {
		return nil, httputil.Categorize(err,
			fmt.Sprintf("User or read shelf not found for %s", username),
			fmt.Sprintf("fetching read books for %s", username))
	}
	return resp.Body, nil
}
