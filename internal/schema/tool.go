// Package schema contains the core types shared across excelaipro packages:
// conversation messages, the tool contract, stream chunks, and uploaded-file
// references. Concrete implementations live in their respective packages.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface all model-callable tools must satisfy.
// The built-in catalog tool and MCP-discovered tools both implement it.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (string, error)
}
