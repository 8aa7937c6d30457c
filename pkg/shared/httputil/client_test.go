package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

func TestClientGetSetsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "adapter-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/activity+json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(5, "adapter-test/1.0")
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"Accept": "application/activity+json"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClientPostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "golang", r.PostForm.Get("q"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := NewClient(5, "").PostForm(context.Background(), srv.URL, url.Values{"q": {"golang"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Body))
}

func TestClientStatusErrorCategorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := NewClient(5, "").Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	categorized := Categorize(err, "User not found.", "fetching user")
	assert.Equal(t, mcpkit.CategoryNotFound, mcpkit.CategoryOf(categorized))

	categorized = Categorize(&StatusError{Code: 502}, "User not found.", "fetching user")
	assert.Equal(t, mcpkit.CategoryInternal, mcpkit.CategoryOf(categorized))
}

func TestClientCapsResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("chunked") != "" {
			w.(http.Flusher).Flush()
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	client := NewClient(5, "")
	client.MaxBodyBytes = 16
	for _, rawURL := range []string{srv.URL, srv.URL + "?chunked=1"} {
		resp, err := client.Get(context.Background(), rawURL, nil)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrBodyTooLarge)
		assert.Equal(t, mcpkit.CategoryInternal, mcpkit.CategoryOf(err))
		assert.Contains(t, err.Error(), "response too large")
	}

	client.MaxBodyBytes = 64
	resp, err := client.Get(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Body, 64)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(0, "")
	assert.Equal(t, DefaultMaxBodyBytes, client.MaxBodyBytes)
	assert.Equal(t, DefaultTimeoutSecs*time.Second, client.HTTP.Timeout)
}

func TestNormalizeContentType(t *testing.T) {
	assert.Equal(t, "application/octet-stream", NormalizeContentType(""))
	assert.Equal(t, "text/html", NormalizeContentType("Text/HTML; charset=UTF-8"))
}
