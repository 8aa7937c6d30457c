package rottentomatoes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	json5 "github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/htmlx"
)

// Movie is one tile of the browse page, optionally enriched with details.
type Movie struct {
	Title          string `json:"Film Title"`
	CriticRating   string `json:"Critic Rating"`
	AudienceRating string `json:"Audience Rating"`
	StreamingDate  string `json:"Streaming Date"`
	MovieURL       string `json:"Movie URL"`
	*Details
}

// Details come from the movie's own page.
type Details struct {
	Genre         any      `json:"genre"`
	ContentRating any      `json:"contentRating"`
	Actor         []string `json:"actor"`
	Director      []string `json:"director"`
	Description   string   `json:"description"`
}

// ParseBrowse extracts movie tiles from the browse page. Relative movie links
// are resolved against baseURL.
func ParseBrowse(body []byte, baseURL string) ([]Movie, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	movies := []Movie{}
	doc.Find("div.discovery-tiles").Each(func(_ int, container *goquery.Selection) {
		container.Find("div.flex-container").Each(func(_ int, tile *goquery.Selection) {
			movie := Movie{
				Title:          htmlx.TextOr(tile.Find("span.p--small"), mcpkit.NotAvailable),
				CriticRating:   mcpkit.NotAvailable,
				AudienceRating: mcpkit.NotAvailable,
				StreamingDate:  htmlx.TextOr(tile.Find("span.smaller"), mcpkit.NotAvailable),
				MovieURL:       mcpkit.NotAvailable,
			}
			if scores := tile.Find("score-pairs-deprecated").First(); scores.Length() > 0 {
				movie.CriticRating = htmlx.TextOr(scores.Find(`rt-text[slot="criticsScore"]`), mcpkit.NotAvailable)
				movie.AudienceRating = htmlx.TextOr(scores.Find(`rt-text[slot="audienceScore"]`), mcpkit.NotAvailable)
			}
			if href := htmlx.AttrOr(tile.Find(`a[data-track="scores"]`), "href", ""); href != "" {
				movie.MovieURL = absoluteURL(baseURL, href)
			}
			movies = append(movies, movie)
		})
	})
	return movies, nil
}

func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}

// ParseDetails extracts the description and the ld+json metadata of a movie page.
func ParseDetails(body []byte) (*Details, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	details := &Details{
		Genre:         mcpkit.NotAvailable,
		ContentRating: mcpkit.NotAvailable,
		Actor:         []string{},
		Director:      []string{},
		Description:   htmlx.AttrOr(doc.Find(`meta[name="description"]`), "content", ""),
	}
	if details.Description == "" {
		og := opengraph.NewOpenGraph()
		if err := og.ProcessHTML(bytes.NewReader(body)); err == nil {
			details.Description = strings.TrimSpace(og.Description)
		}
	}
	if details.Description == "" {
		details.Description = mcpkit.NotAvailable
	}

	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return details, nil
	}
	var ld map[string]any
	if err := json5.Unmarshal([]byte(script.Text()), &ld); err != nil {
		return nil, fmt.Errorf("parsing ld+json: %w", err)
	}
	if genre, ok := ld["genre"]; ok && genre != nil {
		details.Genre = genre
	}
	if rating, ok := ld["contentRating"]; ok && rating != nil {
		details.ContentRating = rating
	}
	details.Actor = names(ld["actor"])
	details.Director = names(ld["director"])
	return details, nil
}

// names collects the "name" fields of a person or list of persons.
func names(v any) []string {
	out := []string{}
	switch people := v.(type) {
	case []any:
		for _, p := range people {
			out = append(out, names(p)...)
		}
	case map[string]any:
		if name, ok := people["name"].(string); ok && name != "" {
			out = append(out, name)
		}
	}
	return out
}
