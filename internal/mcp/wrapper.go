package mcp

import (
	"context"
	"encoding/json"

	"github.com/excelaipro/excelaipro/internal/schema"
)

// RemoteTool wraps a single tool discovered from the MCP server and
// implements schema.Tool. Tools keep their server-side names so the model
// addresses them exactly as the catalog advertises them.
type RemoteTool struct {
	client      *Client
	name        string
	description string
	parameters  json.RawMessage
}

func (t *RemoteTool) Name() string                { return t.name }
func (t *RemoteTool) Description() string         { return t.description }
func (t *RemoteTool) Parameters() json.RawMessage { return t.parameters }

func (t *RemoteTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return t.client.CallTool(ctx, t.name, params)
}

var _ schema.Tool = (*RemoteTool)(nil)
