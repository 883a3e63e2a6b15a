// Package tools assembles the merged tool set presented to the model: the
// static catalog tool plus every tool discovered from the MCP server at
// request time.
package tools

import (
	"encoding/json"
	"sort"

	"github.com/excelaipro/excelaipro/internal/schema"
)

// ToolList holds a named set of tools and exposes them for LLM calls.
type ToolList struct {
	tools map[string]schema.Tool
}

// NewToolList returns a ToolList seeded with the given tools. Later entries
// replace earlier ones on name collision, so remotely discovered tools take
// precedence over static ones.
func NewToolList(ts ...schema.Tool) *ToolList {
	list := ToolList{tools: make(map[string]schema.Tool, len(ts))}
	for _, t := range ts {
		list.tools[t.Name()] = t
	}
	return &list
}

// Get returns the tool with the given name, or nil if not found.
func (r *ToolList) Get(name string) schema.Tool {
	return r.tools[name]
}

// Add registers a new tool, replacing any existing tool with the same name.
func (r *ToolList) Add(t schema.Tool) schema.Tool {
	r.tools[t.Name()] = t
	return t
}

// Len returns the number of registered tools.
func (r *ToolList) Len() int { return len(r.tools) }

// Names returns the registered tool names in sorted order.
func (r *ToolList) Names() []string {
	out := make([]string, 0, len(r.tools))
	for name := range r.tools {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Definitions returns all tool definitions in OpenAI function-calling format,
// ordered by name so the request body is deterministic.
func (r *ToolList) Definitions() []map[string]any {
	list := make([]map[string]any, 0, len(r.tools))
	for _, name := range r.Names() {
		t := r.tools[name]
		var params any
		if err := json.Unmarshal(t.Parameters(), &params); err != nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		list = append(list, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Name(),
				"description": t.Description(),
				"parameters":  params,
			},
		})
	}
	return list
}
