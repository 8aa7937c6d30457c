package httputil

import (
	"errors"
	"net/http"

	"github.com/beeper/mcp-adapters/pkg/mcpkit"
)

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}

// Categorize maps an outbound failure onto the tool error categories.
// A 404 becomes not found with notFoundMessage; everything else is internal.
func Categorize(err error, notFoundMessage, action string) error {
	if err == nil {
		return nil
	}
	if StatusCode(err) == http.StatusNotFound && notFoundMessage != "" {
		return mcpkit.NotFound("%s", notFoundMessage)
	}
	return mcpkit.Internal(err, "%s", action)
}
