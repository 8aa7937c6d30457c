package searxng

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/htmlx"
)

// Result is one web or news hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// FileResult is one hit from the files category.
type FileResult struct {
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
	Magnet   string `json:"magnet,omitempty"`
	Seeders  string `json:"seeders"`
	Leechers string `json:"leechers"`
}

// ParseResults extracts up to max linked results from a results page.
func ParseResults(body []byte, max int) ([]Result, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	results := []Result{}
	doc.Find("article.result").EachWithBreak(func(_ int, article *goquery.Selection) bool {
		href := htmlx.AttrOr(article.Find("a.url_header"), "href", "")
		if href == "" {
			return true
		}
		results = append(results, Result{
			Title:   htmlx.TextOr(article.Find("h3"), "No Title"),
			URL:     href,
			Content: htmlx.TextOr(article.Find("p.content"), "No Description"),
		})
		return len(results) < max
	})
	return results, nil
}

// ParseFileResults extracts up to max results with torrent metadata.
func ParseFileResults(body []byte, max int) ([]FileResult, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	results := []FileResult{}
	doc.Find("article.result").EachWithBreak(func(_ int, article *goquery.Selection) bool {
		result := FileResult{Seeders: mcpkit.NotAvailable, Leechers: mcpkit.NotAvailable}
		if href := htmlx.AttrOr(article.Find("a.url_header"), "href", ""); href != "" {
			result.URL = href
			result.Title = htmlx.TextOr(article.Find("h3"), "No Title")
		}
		result.Magnet = htmlx.AttrOr(article.Find(`p.altlink a[href*="magnet:"]`), "href", "")

		stats := article.Find("p.stat")
		if badge := stats.Eq(0).Find("span.badge"); badge.Length() > 0 {
			result.Seeders = strings.TrimSpace(strings.ReplaceAll(htmlx.Text(badge), "Seeder", ""))
		}
		if badge := stats.Eq(1).Find("span.badge"); badge.Length() > 0 {
			result.Leechers = strings.TrimSpace(strings.ReplaceAll(htmlx.Text(badge), "Leecher", ""))
		}
		results = append(results, result)
		return len(results) < max
	})
	return results, nil
}
