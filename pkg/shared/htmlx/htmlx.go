// Package htmlx holds goquery helpers shared by the scraping adapters.
package htmlx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse builds a document from an HTML body.
func Parse(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// Text returns the text of the first node in sel with whitespace collapsed.
func Text(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(sel.First().Text()), " ")
}

// TextOr returns Text(sel), or def when it is empty.
func TextOr(sel *goquery.Selection, def string) string {
	if text := Text(sel); text != "" {
		return text
	}
	return def
}

// AttrOr returns the trimmed attribute of the first node in sel, or def.
func AttrOr(sel *goquery.Selection, name, def string) string {
	if sel == nil || sel.Length() == 0 {
		return def
	}
	value, ok := sel.First().Attr(name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return def
	}
	return value
}
