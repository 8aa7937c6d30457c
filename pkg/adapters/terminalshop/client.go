package terminalshop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"go.mau.fi/util/ptr"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/httputil"
)

// Client is a thin authenticated wrapper around the Terminal shop REST API.
type Client struct {
	cfg  *Config
	http *httputil.Client
}

func NewClient(cfg *Config) *Client {
	cfg = cfg.WithDefaults()
	client := httputil.NewClient(cfg.TimeoutSecs, "")
	client.Headers = map[string]string{
		"Authorization": "Bearer " + cfg.BearerToken,
		"Accept":        "application/json",
	}
	return &Client{cfg: cfg, http: client}
}

// ProfileUpdate carries the optional fields of a profile update. Nil fields are omitted.
type ProfileUpdate struct {
	Email *string `json:"email,omitempty"`
	Name  *string `json:"name,omitempty"`
}

// NewProfileUpdate drops empty values so they are left unchanged upstream.
func NewProfileUpdate(email, name string) *ProfileUpdate {
	return &ProfileUpdate{Email: ptr.NonZero(email), Name: ptr.NonZero(name)}
}

func (c *Client) ListProducts(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/product", nil)
}

func (c *Client) GetProduct(ctx context.Context, id string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/product/"+url.PathEscape(id), nil)
}

func (c *Client) ListTokens(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/token", nil)
}

func (c *Client) GetToken(ctx context.Context, id string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/token/"+url.PathEscape(id), nil)
}

func (c *Client) CreateToken(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, "/token", nil)
}

func (c *Client) DeleteToken(ctx context.Context, id string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodDelete, "/token/"+url.PathEscape(id), nil)
}

func (c *Client) GetProfile(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/profile", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, update *ProfileUpdate) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPut, "/profile", update)
}

func (c *Client) ListAddresses(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/address", nil)
}

func (c *Client) ListCards(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/card", nil)
}

func (c *Client) GetCart(ctx context.Context) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, "/cart", nil)
}

func (c *Client) request(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var resp *httputil.Response
	var err error
	if payload != nil {
		resp, err = c.http.SendJSON(ctx, method, c.cfg.APIURL+path, payload, nil)
	} else {
		resp, err = c.http.Do(ctx, method, c.cfg.APIURL+path, nil, nil)
	}
	if err != nil {
		return nil, categorize(err)
	}
	if !json.Valid(resp.Body) {
		return nil, mcpkit.Internal(nil, "API request failed: response is not valid JSON")
	}
	return unwrapData(resp.Body), nil
}

// unwrapData returns the "data" member of the response envelope, or the whole body.
func unwrapData(body []byte) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return bytes.TrimSpace(body)
}

func categorize(err error) error {
	var statusErr *httputil.StatusError
	if !errors.As(err, &statusErr) {
		return mcpkit.Internal(err, "API request failed")
	}
	switch statusErr.Code {
	case http.StatusBadRequest:
		return mcpkit.InvalidParams("Bad Request: %s", statusErr.Body)
	case http.StatusUnauthorized:
		return mcpkit.Internal(nil, "Unauthorized: Invalid bearer token.")
	case http.StatusNotFound:
		return mcpkit.NotFound("Not Found: Resource not found.")
	case http.StatusTooManyRequests:
		return mcpkit.Internal(nil, "Too Many Requests: Rate limit exceeded.")
	default:
		return mcpkit.Internal(nil, "API request failed with status code %d", statusErr.Code)
	}
}
