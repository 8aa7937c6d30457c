package mcpkit

import (
	"context"
	"sort"
	"sync"
)

// Registry manages the tools exposed by one adapter process.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool // name -> tool
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool),
	}
}

// Register adds tools to the registry. A tool with an existing name replaces the old one.
func (r *Registry) Register(tools ...*Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range tools {
		r.tools[tool.Name] = tool
	}
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns all registered tools sorted by name.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, tool := range all {
		names[i] = tool.Name
	}
	return names
}

// Call executes the named tool directly, bypassing the protocol layer.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (*Result, error) {
	tool := r.Get(name)
	if tool == nil || tool.Execute == nil {
		return nil, NotFound("unknown tool %q", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return tool.Execute(ctx, args)
}
