package mcpkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONResult creates a structured JSON result from any payload.
func JSONResult(payload any) *Result {
	return &Result{
		Content: []ContentBlock{{Type: "text", Text: mustJSON(payload, "")}},
	}
}

// IndentedJSONResult is JSONResult with the payload rendered using indent.
func IndentedJSONResult(payload any, indent string) *Result {
	return &Result{
		Content: []ContentBlock{{Type: "text", Text: mustJSON(payload, indent)}},
	}
}

// RawJSONResult passes an upstream JSON document through unchanged.
func RawJSONResult(data []byte) *Result {
	return TextResult(string(data))
}

// TextResult creates a simple text result.
func TextResult(text string) *Result {
	return &Result{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// ImageResult creates a result with a caption and image content.
func ImageResult(caption string, data []byte, mimeType string) *Result {
	return &Result{
		Content: []ContentBlock{
			{Type: "text", Text: caption},
			{Type: "image", Data: data, MimeType: mimeType},
		},
	}
}

func mustJSON(v any, indent string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal: %s"}`, err.Error())
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
