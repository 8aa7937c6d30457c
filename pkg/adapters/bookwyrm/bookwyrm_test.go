package bookwyrm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestParseReviews(t *testing.T) {
	reviews, err := ParseReviews(fixture(t, "reviews.html"))
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	assert.Equal(t, Review{
		BookTitle:  "The Dispossessed",
		Author:     "Ursula K. Le Guin",
		Rating:     "5 stars",
		ReviewText: "An ambiguous utopia.\nShevek's walls stayed with me.",
	}, reviews[0])
	assert.Equal(t, Review{
		BookTitle:  "Kindred",
		Author:     "Octavia E. Butler",
		Rating:     "N/A",
		ReviewText: "Rereading for book club.",
	}, reviews[1])
	assert.Equal(t, Review{BookTitle: "N/A", Author: "N/A", Rating: "N/A"}, reviews[2])
}

func TestParseReadBooks(t *testing.T) {
	books, err := ParseReadBooks(fixture(t, "read_books.html"))
	require.NoError(t, err)
	assert.Equal(t, []Book{
		{Title: "A Wizard of Earthsea", Author: "Ursula K. Le Guin"},
		{Title: "Parable of the Sower", Author: "N/A"},
	}, books)
}

func TestParseReadBooksWithoutTable(t *testing.T) {
	books, err := ParseReadBooks([]byte("<html><body><p>This shelf is empty.</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, books)
}

func newTestRegistry(t *testing.T, handler http.Handler) *mcpkit.Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	reg := mcpkit.NewRegistry()
	reg.Register(Tools(NewClient(&Config{BaseURL: srv.URL}))...)
	return reg
}

func TestSearchPassesThroughJSON(t *testing.T) {
	reg := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "the lathe of heaven", r.URL.Query().Get("q"))
		assert.Equal(t, "book", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"title":"The Lathe of Heaven","key":"https://bookwyrm.social/book/42","author":"Ursula K. Le Guin","year":1971,"cover":null,"confidence":0.9}]`))
	}))

	res, err := reg.Call(context.Background(), "search_bookwyrm_books", map[string]any{"query": "the lathe of heaven"})
	require.NoError(t, err)
	var books []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "The Lathe of Heaven", books[0]["title"])
}

func TestSearchSendsConfiguredUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shelf-reader/2.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	body, err := NewClient(&Config{BaseURL: srv.URL, UserAgent: "shelf-reader/2.0"}).SearchBooks(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	reg := newTestRegistry(t, http.NotFoundHandler())
	_, err := reg.Call(context.Background(), "search_bookwyrm_books", map[string]any{"query": "  "})
	assert.Equal(t, mcpkit.CategoryInvalidParams, mcpkit.CategoryOf(err))
}

func TestReadShelfNotFound(t *testing.T) {
	reg := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/ghost/shelf/read.json", r.URL.Path)
		assert.Equal(t, "application/activity+json", r.Header.Get("Accept"))
		http.NotFound(w, r)
	}))

	_, err := reg.Call(context.Background(), "get_user_read_books_shelf_info", map[string]any{"username": "ghost"})
	require.Error(t, err)
	assert.Equal(t, mcpkit.CategoryNotFound, mcpkit.CategoryOf(err))
	assert.Contains(t, err.Error(), "ghost")
}

func TestReadShelfServerErrorIsInternal(t *testing.T) {
	reg := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	_, err := reg.Call(context.Background(), "get_user_read_books_shelf_info", map[string]any{"username": "mouse"})
	assert.Equal(t, mcpkit.CategoryInternal, mcpkit.CategoryOf(err))
}

func TestGetUserReviewsTool(t *testing.T) {
	page := fixture(t, "reviews.html")
	reg := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/mouse/reviews-comments", r.URL.Path)
		_, _ = w.Write(page)
	}))

	res, err := reg.Call(context.Background(), "get_user_reviews", map[string]any{"username": "mouse"})
	require.NoError(t, err)
	var reviews []Review
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &reviews))
	assert.Len(t, reviews, 3)
}

func TestGetUserReadBooksPaging(t *testing.T) {
	page := fixture(t, "read_books.html")
	reg := newTestRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/mouse/books/read", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write(page)
	}))

	res, err := reg.Call(context.Background(), "get_user_read_books_from_url", map[string]any{"username": "mouse", "page": 2.0})
	require.NoError(t, err)
	assert.Contains(t, res.Text(), "A Wizard of Earthsea")

	_, err = reg.Call(context.Background(), "get_user_read_books_from_url", map[string]any{"username": "mouse", "page": 0.0})
	assert.Equal(t, mcpkit.CategoryInvalidParams, mcpkit.CategoryOf(err))
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("BOOKWYRM_BASE_URL", "")
	cfg := ApplyEnvDefaults(&Config{BaseURL: "https://books.example/"})
	assert.Equal(t, "https://books.example", cfg.BaseURL)
	assert.Equal(t, DefaultTimeoutSecs, cfg.TimeoutSecs)
	assert.NoError(t, cfg.Validate())

	t.Setenv("BOOKWYRM_BASE_URL", "https://env.example")
	cfg = ApplyEnvDefaults(&Config{})
	assert.Equal(t, "https://env.example", cfg.BaseURL)
	assert.Error(t, (&Config{BaseURL: "not a url"}).Validate())
}
