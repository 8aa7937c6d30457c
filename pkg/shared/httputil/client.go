package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

const (
	// DefaultTimeoutSecs bounds a single outbound call when the caller sets no timeout.
	DefaultTimeoutSecs = 10
	// DefaultMaxBodyBytes caps how much of a response body is read into memory.
	DefaultMaxBodyBytes int64 = 32 << 20
)

// ErrBodyTooLarge is wrapped by the error Do returns when a body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// Response is a fully read HTTP response.
type Response struct {
	Status      int
	Header      http.Header
	ContentType string
	FinalURL    string
	Body        []byte
}

// Client performs single, bounded HTTP calls. It never retries.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
	// MaxBodyBytes caps the body read by Do. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// NewClient returns a Client with the given timeout in seconds.
func NewClient(timeoutSecs int, userAgent string) *Client {
	if timeoutSecs <= 0 {
		timeoutSecs = DefaultTimeoutSecs
	}
	return &Client{
		HTTP:         &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second},
		UserAgent:    userAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Get sends a GET request with optional extra headers.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, rawURL, nil, headers)
}

// PostForm sends a form-encoded POST request.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (*Response, error) {
	headers = mergeHeaders(headers, map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	return c.Do(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()), headers)
}

// SendJSON marshals payload (when non-nil) and sends it with method.
func (c *Client) SendJSON(ctx context.Context, method, rawURL string, payload any, headers map[string]string) (*Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		headers = mergeHeaders(headers, map[string]string{"Content-Type": "application/json"})
	}
	return c.Do(ctx, method, rawURL, body, headers)
}

// Do sends a request and reads the whole body. Non-2xx statuses return a *StatusError
// together with the response so callers can still inspect it.
func (c *Client) Do(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range mergeHeaders(c.Headers, headers) {
		req.Header.Set(k, v)
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeoutSecs * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	maxBytes := c.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	if resp.ContentLength > maxBytes {
		return nil, mcpkit.Internal(ErrBodyTooLarge, "response too large: %d bytes (max %d)", resp.ContentLength, maxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, mcpkit.Internal(ErrBodyTooLarge, "response too large (max %d bytes)", maxBytes)
	}
	out := &Response{
		Status:      resp.StatusCode,
		Header:      resp.Header,
		ContentType: NormalizeContentType(resp.Header.Get("Content-Type")),
		FinalURL:    rawURL,
		Body:        data,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		out.FinalURL = resp.Request.URL.String()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &StatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return out, nil
}

// NormalizeContentType strips parameters from a Content-Type header value.
func NormalizeContentType(value string) string {
	if value == "" {
		return "application/octet-stream"
	}
	parts := strings.Split(value, ";")
	return strings.ToLower(strings.TrimSpace(parts[0]))
}

// mergeHeaders returns base overlaid with override. Neither input is modified.
func mergeHeaders(base, override map[string]string) map[string]string {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]string, len(override))
	}
	maps.Copy(out, override)
	return out
}
