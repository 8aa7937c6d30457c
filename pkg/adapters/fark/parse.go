package fark

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/beeper/mcp-adapters/pkg/shared/htmlx"
)

// Headline is one outbound link from the front page.
type Headline struct {
	URL string `json:"url"`
	Tag string `json:"tag"`
}

func (h Headline) String() string {
	return h.URL + " | " + h.Tag
}

var excludedTags = []string{"photoshop", "youtube"}

// ParseHeadlines extracts outbound headline links from the front page.
// Rows without a headline link, and rows tagged as photoshop or youtube, are skipped.
func ParseHeadlines(body []byte) ([]Headline, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	headlines := []Headline{}
	doc.Find("#headline_container td.headlineSourceImage").Each(func(_ int, td *goquery.Selection) {
		link := td.Find("a.outbound_link").First()
		href, ok := link.Attr("href")
		if link.Length() == 0 || !ok {
			return
		}
		headlineLink := td.Closest("tr").Find("td.headlineText span.headline a.outbound_link").First()
		if headlineLink.Length() == 0 {
			return
		}
		tag := strings.TrimSpace(headlineLink.Text())
		if isExcluded(tag) {
			return
		}
		headlines = append(headlines, Headline{URL: href, Tag: tag})
	})
	return headlines, nil
}

func isExcluded(tag string) bool {
	lower := strings.ToLower(tag)
	for _, excluded := range excludedTags {
		if strings.Contains(lower, excluded) {
			return true
		}
	}
	return false
}

// ParseRedirect finds the destination of an interstitial redirect page:
// the meta refresh target, else the first link, else fallback.
func ParseRedirect(body []byte, fallback string) (string, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return "", err
	}
	var target string
	found := false
	doc.Find("meta").EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		equiv, _ := meta.Attr("http-equiv")
		if !strings.EqualFold(strings.TrimSpace(equiv), "refresh") {
			return true
		}
		content, _ := meta.Attr("content")
		target = refreshTarget(content)
		found = true
		return false
	})
	if found {
		return target, nil
	}
	if href, ok := doc.Find("a").First().Attr("href"); ok {
		return href, nil
	}
	return fallback, nil
}

// refreshTarget returns the text after the last "url=" in a refresh directive.
func refreshTarget(content string) string {
	idx := strings.LastIndex(strings.ToLower(content), "url=")
	if idx < 0 {
		return content
	}
	return strings.Trim(strings.TrimSpace(content[idx+len("url="):]), `'"`)
}
