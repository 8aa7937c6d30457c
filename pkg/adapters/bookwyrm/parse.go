package bookwyrm

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
	"github.com/beeper/mcp-adapters/pkg/shared/htmlx"
)

// Review is one entry from a user's reviews page.
type Review struct {
	BookTitle  string `json:"book_title"`
	Author     string `json:"author"`
	Rating     string `json:"rating"`
	ReviewText string `json:"review_text"`
}

// Book is one row of a user's read books table.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ParseReviews extracts reviews from the reviews-comments page.
func ParseReviews(body []byte) ([]Review, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	reviews := []Review{}
	doc.Find("article.card").Each(func(_ int, article *goquery.Selection) {
		review := Review{
			BookTitle: mcpkit.NotAvailable,
			Author:    mcpkit.NotAvailable,
			Rating:    mcpkit.NotAvailable,
		}
		if h3 := article.Find("header.card-header h3").First(); h3.Length() > 0 {
			review.BookTitle = htmlx.TextOr(h3.Find(`a[href*="/book/"]`), mcpkit.NotAvailable)
			if authorLink := h3.Find("a.author").First(); authorLink.Length() > 0 {
				review.Author = htmlx.TextOr(authorLink.Find(`span[itemprop="name"]`), htmlx.TextOr(authorLink, mcpkit.NotAvailable))
			}
			review.Rating = htmlx.TextOr(h3.Find("span.is-sr-only"), mcpkit.NotAvailable)
		}
		if content := article.Find("section.card-content").First(); content.Length() > 0 {
			review.ReviewText = reviewText(content)
		}
		reviews = append(reviews, review)
	})
	return reviews, nil
}

// reviewText joins the non-empty paragraph and div children of the card content,
// skipping the book cover block.
func reviewText(content *goquery.Selection) string {
	var parts []string
	content.Children().Each(func(_ int, child *goquery.Selection) {
		if child.Is("div.columns") || !child.Is("p, div") {
			return
		}
		if text := htmlx.Text(child); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// ParseReadBooks extracts title and author rows from a read books page.
func ParseReadBooks(body []byte) ([]Book, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, err
	}
	books := []Book{}
	doc.Find("table.table.is-striped.is-fullwidth.is-mobile").First().
		Find("tbody tr.book-preview").
		Each(func(_ int, row *goquery.Selection) {
			books = append(books, Book{
				Title:  htmlx.TextOr(row.Find(`td[data-title="Title"]`), mcpkit.NotAvailable),
				Author: htmlx.TextOr(row.Find(`td[data-title="Author"]`), mcpkit.NotAvailable),
			})
		})
	return books, nil
}
