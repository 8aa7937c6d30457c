package rottentomatoes

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

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestParseBrowse(t *testing.T) {
	movies, err := ParseBrowse(readFixture(t, "browse.html"), "https://www.rottentomatoes.com")
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, Movie{
		Title:          "The Wild Robot",
		CriticRating:   "98%",
		AudienceRating: "98%",
		StreamingDate:  "Streaming Oct 15, 2024",
		MovieURL:       "https://www.rottentomatoes.com/m/the_wild_robot",
	}, movies[0])
	assert.Equal(t, Movie{
		Title:          "Mystery Movie",
		CriticRating:   "N/A",
		AudienceRating: "N/A",
		StreamingDate:  "N/A",
		MovieURL:       "N/A",
	}, movies[1])
}

func TestParseBrowseNoContainers(t *testing.T) {
	movies, err := ParseBrowse([]byte(`<html><body><div class="other"></div></body></html>`), DefaultBaseURL)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestParseDetails(t *testing.T) {
	details, err := ParseDetails(readFixture(t, "movie.html"))
	require.NoError(t, err)
	assert.Equal(t, "Shipwrecked on a deserted island, a robot named Roz must learn to adapt.", details.Description)
	assert.Equal(t, []any{"Kids & family", "Sci-fi", "Adventure"}, details.Genre)
	assert.Equal(t, "PG", details.ContentRating)
	assert.Equal(t, []string{"Lupita Nyong'o", "Pedro Pascal"}, details.Actor)
	assert.Equal(t, []string{"Chris Sanders"}, details.Director)
}

func TestParseDetailsOpenGraphFallback(t *testing.T) {
	details, err := ParseDetails(readFixture(t, "movie_og.html"))
	require.NoError(t, err)
	assert.Equal(t, "Only OpenGraph metadata here.", details.Description)
	assert.Equal(t, "N/A", details.Genre)
	assert.Equal(t, "N/A", details.ContentRating)
	assert.Equal(t, []string{}, details.Actor)
}

func TestGetMoviesTool(t *testing.T) {
	browse := readFixture(t, "browse.html")
	movie := readFixture(t, "movie.html")
	mux := http.NewServeMux()
	mux.HandleFunc(BrowsePath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(browse)
	})
	mux.HandleFunc("/m/the_wild_robot", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(movie)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	reg := mcpkit.NewRegistry()
	reg.Register(Tools(NewClient(&Config{BaseURL: srv.URL}))...)
	res, err := reg.Call(context.Background(), "get_rotten_tomatoes_movies", nil)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "The Wild Robot", out[0]["Film Title"])
	assert.Equal(t, srv.URL+"/m/the_wild_robot", out[0]["Movie URL"])
	assert.Equal(t, "PG", out[0]["contentRating"])
	assert.Equal(t, []any{"Chris Sanders"}, out[0]["director"])
	assert.NotContains(t, out[1], "genre")
}

func TestDetailFailureKeepsSummary(t *testing.T) {
	browse := readFixture(t, "browse.html")
	mux := http.NewServeMux()
	mux.HandleFunc(BrowsePath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(browse)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	movies, err := NewClient(&Config{BaseURL: srv.URL}).Popular(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Nil(t, movies[0].Details)
	assert.Equal(t, "98%", movies[0].CriticRating)
}

func TestBrowseFailureIsInternal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()
	_, err := NewClient(&Config{BaseURL: srv.URL}).Popular(context.Background(), 0)
	assert.Equal(t, mcpkit.CategoryInternal, mcpkit.CategoryOf(err))
}
