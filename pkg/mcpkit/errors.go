package mcpkit

import (
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
)

// Category classifies a tool failure for the protocol layer.
type Category int

const (
	// CategoryInternal covers upstream failures, timeouts and unexpected data.
	CategoryInternal Category = iota
	// CategoryInvalidParams means the caller supplied unusable arguments.
	CategoryInvalidParams
	// CategoryNotFound means the upstream resource does not exist.
	CategoryNotFound
)

const (
	codeInvalidParams = -32602
	codeInternal      = -32603
	codeNotFound      = -32002
)

func (c Category) String() string {
	switch c {
	case CategoryInvalidParams:
		return "invalid_params"
	case CategoryNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a categorized tool failure.
type Error struct {
	Category Category
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidParams returns an invalid-parameters error with a formatted message.
func InvalidParams(format string, args ...any) error {
	return &Error{Category: CategoryInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error with a formatted message.
func NotFound(format string, args ...any) error {
	return &Error{Category: CategoryNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps err as an internal error. A nil err yields a plain message.
func Internal(err error, format string, args ...any) error {
	return &Error{Category: CategoryInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// CategoryOf reports the category of err. Uncategorized errors are internal.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return CategoryInternal
}

// ToJSONRPC converts err into the wire error returned to the MCP client.
func ToJSONRPC(err error) *jsonrpc.Error {
	if err == nil {
		return nil
	}
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	code := codeInternal
	switch CategoryOf(err) {
	case CategoryInvalidParams:
		code = codeInvalidParams
	case CategoryNotFound:
		code = codeNotFound
	}
	return &jsonrpc.Error{Code: int64(code), Message: err.Error()}
}
