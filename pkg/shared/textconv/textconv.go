// Package textconv turns fetched documents into plain text for tool output.
package textconv

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ledongthuc/pdf"
	"github.com/pkoukk/tiktoken-go"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// HTMLToMarkdown converts an HTML document to Markdown.
func HTMLToMarkdown(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting html to markdown: %w", err)
	}
	return Normalize(md), nil
}

// PDFToText extracts the plain text of every page in a PDF document.
func PDFToText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	text, err := io.ReadAll(textReader)
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return Normalize(string(text)), nil
}

// IsPDF reports whether a document is a PDF by content type or magic bytes.
func IsPDF(contentType string, data []byte) bool {
	return strings.Contains(contentType, "application/pdf") || bytes.HasPrefix(data, []byte("%PDF-"))
}

// Normalize trims trailing whitespace per line and collapses runs of blank lines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	text = strings.Join(lines, "\n")
	return strings.TrimSpace(excessNewlines.ReplaceAllString(text, "\n\n"))
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func tokenizer() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	return encoding
}

// TruncateTokens limits text to maxTokens cl100k tokens. When the encoding
// cannot be loaded it falls back to four runes per token.
func TruncateTokens(text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 || text == "" {
		return text, false
	}
	if enc := tokenizer(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) <= maxTokens {
			return text, false
		}
		return enc.Decode(tokens[:maxTokens]), true
	}
	runes := []rune(text)
	limit := maxTokens * 4
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]), true
}
