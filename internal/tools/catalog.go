package tools

import (
	"context"
	"encoding/json"

	"github.com/excelaipro/excelaipro/internal/schema"
)

// CatalogToolName is the reserved name of the built-in diagnostic tool.
// Remote tools are not expected to collide with it; if one does, the remote
// tool wins.
const CatalogToolName = "showAllExcelTools"

// CatalogTool is the one static tool in the merged set. Its invocation
// carries no payload: it exists so the client UI can render the tool catalog
// locally when the model calls it.
type CatalogTool struct{}

func NewCatalogTool() *CatalogTool { return &CatalogTool{} }

func (t *CatalogTool) Name() string { return CatalogToolName }

func (t *CatalogTool) Description() string {
	return "When the user asks to display all the tools available for working with excel, or the user says tools or tools please etc"
}

func (t *CatalogTool) Parameters() json.RawMessage {
	return json.RawMessage(`{"type":"object","properties":{}}`)
}

// Execute returns an empty result and never fails.
func (t *CatalogTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	return "", nil
}

var _ schema.Tool = (*CatalogTool)(nil)
