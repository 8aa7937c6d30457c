package searxng

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

func TestParseResults(t *testing.T) {
	body, err := os.ReadFile("testdata/results.html")
	require.NoError(t, err)

	results, err := ParseResults(body, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, Result{
		Title:   "The Go Programming Language",
		URL:     "https://go.dev/",
		Content: "Go is an open source programming language.",
	}, results[0])
	assert.Equal(t, Result{Title: "No Title", URL: "https://pkg.go.dev/", Content: "No Description"}, results[1])

	limited, err := ParseResults(body, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestParseFileResults(t *testing.T) {
	body, err := os.ReadFile("testdata/files.html")
	require.NoError(t, err)

	results, err := ParseFileResults(body, 30)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, FileResult{
		Title:    "debian-12.5.0-amd64-netinst.iso",
		URL:      "https://tracker.example/t/1",
		Magnet:   "magnet:?xt=urn:btih:abc123",
		Seeders:  "152",
		Leechers: "7",
	}, results[0])
	assert.Equal(t, FileResult{Seeders: mcpkit.NotAvailable, Leechers: mcpkit.NotAvailable}, results[1])
}

func newSearchServer(t *testing.T, fixture string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	var body []byte
	if fixture != "" {
		var err error
		body, err = os.ReadFile(fixture)
		require.NoError(t, err)
	} else {
		body = []byte(`<html><body><div id="urls"></div></body></html>`)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "simple", r.PostForm.Get("theme"))
		assert.Equal(t, "0", r.PostForm.Get("safesearch"))
		assert.Equal(t, "auto", r.PostForm.Get("language"))
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRegistry(baseURL string) *mcpkit.Registry {
	reg := mcpkit.NewRegistry()
	reg.Register(Tools(NewClient(&Config{BaseURL: baseURL}))...)
	return reg
}

func TestSearchTool(t *testing.T) {
	srv := newSearchServer(t, "testdata/results.html", func(r *http.Request) {
		assert.Equal(t, "golang", r.PostForm.Get("q"))
		assert.Equal(t, "general", r.PostForm.Get("categories"))
		assert.Empty(t, r.PostForm.Get("time_range"))
	})

	res, err := newRegistry(srv.URL).Call(context.Background(), "searxng_search", map[string]any{
		"query":       "golang",
		"max_results": 2,
	})
	require.NoError(t, err)

	var results []Result
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "https://go.dev/", results[0].URL)
}

func TestNewsSearchPassesTimeRange(t *testing.T) {
	srv := newSearchServer(t, "", func(r *http.Request) {
		assert.Equal(t, "news", r.PostForm.Get("categories"))
		assert.Equal(t, "week", r.PostForm.Get("time_range"))
	})

	res, err := newRegistry(srv.URL).Call(context.Background(), "searxng_news_search", map[string]any{
		"query":      "elections",
		"time_range": "week",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"error":"No news articles found for the given query."}]`, res.Text())
}

func TestFileSearchEmpty(t *testing.T) {
	srv := newSearchServer(t, "", nil)
	res, err := newRegistry(srv.URL).Call(context.Background(), "searxng_file_search", map[string]any{"query": "nothing"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"error":"No files found for the given query."}]`, res.Text())
}

func TestSearchValidation(t *testing.T) {
	reg := newRegistry("http://127.0.0.1:1")
	cases := []struct {
		tool string
		args map[string]any
	}{
		{"searxng_search", map[string]any{"query": ""}},
		{"searxng_search", map[string]any{"query": "x", "max_results": 0}},
		{"searxng_news_search", map[string]any{"query": "x", "time_range": "decade"}},
		{"fetch_and_clean", map[string]any{"url": "ftp://example.com/file"}},
		{"fetch_and_clean", map[string]any{"url": "https://example.com", "max_tokens": -1}},
	}
	for _, tc := range cases {
		_, err := reg.Call(context.Background(), tc.tool, tc.args)
		require.Error(t, err, tc.tool)
		assert.Equal(t, mcpkit.CategoryInvalidParams, mcpkit.CategoryOf(err), tc.tool)
	}
}

func TestFetchAndCleanHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><h1>Release notes</h1><p>Go 1.25 is <strong>out</strong>.</p></body></html>`))
	}))
	defer srv.Close()

	res, err := newRegistry("http://unused").Call(context.Background(), "fetch_and_clean", map[string]any{"url": srv.URL})
	require.NoError(t, err)
	assert.Contains(t, res.Text(), "# Release notes")
	assert.Contains(t, res.Text(), "**out**")
}

func TestFetchAndCleanTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>" + strings.Repeat("word ", 500) + "</p>"))
	}))
	defer srv.Close()

	res, err := newRegistry("http://unused").Call(context.Background(), "fetch_and_clean", map[string]any{
		"url":        srv.URL,
		"max_tokens": 10,
	})
	require.NoError(t, err)
	assert.Less(t, len(res.Text()), 200)
}

func TestConfigValidate(t *testing.T) {
	t.Setenv("SEARXNG_BASE_URL", "")
	err := ApplyEnvDefaults(&Config{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARXNG_BASE_URL")

	cfg := ApplyEnvDefaults(&Config{BaseURL: "https://search.example/"})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://search.example", cfg.BaseURL)
	assert.Equal(t, DefaultTimeoutSecs, cfg.TimeoutSecs)
}
