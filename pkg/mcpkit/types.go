// Package mcpkit provides the tool system shared by every adapter.
// Adapters describe their operations as Tools, collect them in a Registry,
// and Server exposes the registry over the Model Context Protocol.
package mcpkit

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NotAvailable is the placeholder used for fields missing from an upstream document.
const NotAvailable = "N/A"

// Tool wraps an MCP tool with execution logic and metadata.
type Tool struct {
	mcp.Tool                                                                  // Name, Description, InputSchema
	Group    string                                                           // adapter name
	Execute  func(ctx context.Context, input map[string]any) (*Result, error) // required
}

// Result standardizes tool output.
type Result struct {
	Content []ContentBlock `json:"content,omitempty"`
}

// Text returns the first text block content.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	for _, block := range r.Content {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}

// ContentBlock supports multi-modal results (text, images).
type ContentBlock struct {
	Type     string `json:"type"`               // "text", "image"
	Text     string `json:"text,omitempty"`     // For text blocks
	Data     []byte `json:"data,omitempty"`     // Raw image bytes
	MimeType string `json:"mimeType,omitempty"` // For images
}
