// Package execxtest provides a scripted execx.Runner for tests.
package execxtest

import (
	"context"
	"strings"
	"sync"

	"github.com/beeper/mcp-adapters/pkg/shared/execx"
)

// FakeRunner records every command and answers with Handler.
type FakeRunner struct {
	mu      sync.Mutex
	Calls   []execx.Command
	Handler func(cmd execx.Command) (*execx.Result, error)
}

var _ execx.Runner = (*FakeRunner)(nil)

// Run records cmd and delegates to Handler.
func (f *FakeRunner) Run(_ context.Context, cmd execx.Command) (*execx.Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	f.mu.Unlock()
	if f.Handler == nil {
		return &execx.Result{}, nil
	}
	return f.Handler(cmd)
}

// CommandLines returns the recorded commands joined as strings.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.String()
	}
	return out
}

// HasArgs reports whether cmd's arguments start with prefix.
func HasArgs(cmd execx.Command, prefix ...string) bool {
	if len(cmd.Args) < len(prefix) {
		return false
	}
	return strings.Join(cmd.Args[:len(prefix)], "\x00") == strings.Join(prefix, "\x00")
}
