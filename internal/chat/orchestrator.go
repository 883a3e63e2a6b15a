// Package chat implements the turn orchestrator: one request's pipeline from
// validated conversation through tool discovery and model invocation to the
// outgoing chunk stream.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/excelaipro/excelaipro/internal/config"
	"github.com/excelaipro/excelaipro/internal/mcp"
	"github.com/excelaipro/excelaipro/internal/models"
	"github.com/excelaipro/excelaipro/internal/prompt"
	"github.com/excelaipro/excelaipro/internal/providers"
	"github.com/excelaipro/excelaipro/internal/schema"
	"github.com/excelaipro/excelaipro/internal/shared/llmutils"
	"github.com/excelaipro/excelaipro/internal/tools"
)

// Streamer is the provider surface the orchestrator drives.
type Streamer interface {
	ChatStream(
		ctx context.Context,
		messages schema.Messages,
		tools []map[string]any,
		opts providers.ChatOptions,
		onDelta func(providers.Delta) error,
	) (providers.StreamResult, error)
}

// ToolBridge is one request-scoped connection to the external tool server.
type ToolBridge interface {
	Tools(ctx context.Context) ([]schema.Tool, error)
	Close()
}

// BridgeDialer opens a fresh ToolBridge for one request.
type BridgeDialer func(ctx context.Context, endpoint string) (ToolBridge, error)

// DialMCP is the production BridgeDialer, backed by the MCP client.
func DialMCP(ctx context.Context, endpoint string) (ToolBridge, error) {
	c, err := mcp.Dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return mcpBridge{c}, nil
}

type mcpBridge struct{ c *mcp.Client }

func (b mcpBridge) Tools(ctx context.Context) ([]schema.Tool, error) {
	remote, err := b.c.Tools(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]schema.Tool, len(remote))
	for i, t := range remote {
		out[i] = t
	}
	return out, nil
}

func (b mcpBridge) Close() { b.c.Close() }

// Orchestrator drives one chat turn end to end. It holds no per-request
// state; every Run call discovers tools and invokes the model fresh.
type Orchestrator struct {
	cfg      *config.Config
	provider Streamer
	dial     BridgeDialer
}

func NewOrchestrator(cfg *config.Config, provider Streamer, dial BridgeDialer) *Orchestrator {
	return &Orchestrator{cfg: cfg, provider: provider, dial: dial}
}

// Run executes one chat turn, emitting chunks through emit as they are
// produced. A returned error means the turn failed; chunks already emitted
// have been delivered and are not retracted. An emit error (client gone)
// cancels the turn.
func (o *Orchestrator) Run(ctx context.Context, req schema.ChatRequest, emit func(schema.Chunk) error) error {
	// Validating.
	if o.cfg.MCPServerURL == "" {
		return fmt.Errorf("%w: EXCELAI_MCP_URL is not set", config.ErrConfiguration)
	}
	conversation := req.Conversation()

	// ToolDiscovery. The bridge connection is request-scoped: opened here,
	// released when the turn ends, never shared.
	bridge, err := o.dial(ctx, o.cfg.MCPEndpoint())
	if err != nil {
		return &ToolBridgeError{Cause: err}
	}
	defer bridge.Close()

	remote, err := bridge.Tools(ctx)
	if err != nil {
		return &ToolBridgeError{Cause: err}
	}

	merged := tools.NewToolList(tools.NewCatalogTool())
	for _, t := range remote {
		merged.Add(t)
	}

	// Invoking.
	modelID := req.SelectedModel
	if modelID == "" {
		modelID = models.DefaultID
	}
	model, err := models.Resolve(modelID)
	if err != nil {
		return err
	}

	conv := schema.NewMessages(schema.NewSystemMessage(prompt.BuildSystemPrompt(req.UploadedFiles)))
	conv.Messages = append(conv.Messages, conversation.Messages...)

	slog.Info("chat turn",
		"model", model.ID,
		"messages", conversation.Len(),
		"tools", merged.Len(),
		"uploads", len(req.UploadedFiles))

	opts := providers.ChatOptions{Model: model.ID, ReasoningRaw: model.Reasoning}

	// Streaming, with the tool loop feeding results back into the
	// conversation until the model produces a terminal answer.
	for i := 0; i < o.cfg.MaxToolIterations; i++ {
		result, err := o.streamOnce(ctx, conv, merged, model, opts, emit)
		if err != nil {
			return err
		}

		if len(result.ToolCalls) == 0 {
			return emit(schema.Chunk{Type: schema.ChunkFinish, FinishReason: result.FinishReason})
		}

		var content *string
		if clean := llmutils.StripThink(result.Content); clean != "" {
			content = &clean
		}
		conv.AddAssistant(content, result.ToolCalls, nil)

		slog.Info("tool calls", "hint", llmutils.ToolHint(result.ToolCalls))

		for _, tc := range result.ToolCalls {
			if err := emit(schema.Chunk{
				Type:       schema.ChunkToolCall,
				ToolCallID: tc.ID,
				ToolName:   tc.Name,
				Args:       tc.Arguments,
			}); err != nil {
				return err
			}

			result := o.executeTool(ctx, merged, tc)
			conv.AddToolResult(tc.ID, tc.Name, result)

			if err := emit(schema.Chunk{
				Type:       schema.ChunkToolResult,
				ToolCallID: tc.ID,
				ToolName:   tc.Name,
				Result:     result,
			}); err != nil {
				return err
			}
		}
	}

	return emit(schema.Chunk{Type: schema.ChunkFinish, FinishReason: "max-tool-iterations"})
}

// streamOnce performs a single streaming model invocation, routing deltas
// through the think splitter (reasoning models) and the word-boundary
// smoother before they reach emit.
func (o *Orchestrator) streamOnce(
	ctx context.Context,
	conv schema.Messages,
	merged *tools.ToolList,
	model models.Model,
	opts providers.ChatOptions,
	emit func(schema.Chunk) error,
) (providers.StreamResult, error) {
	smoother := NewSmoother(func(text string) error {
		return emit(schema.TextChunk(text))
	})

	route := func(d providers.Delta) error {
		if d.Reasoning != "" {
			if err := emit(schema.ReasoningChunk(d.Reasoning)); err != nil {
				return err
			}
		}
		if d.Text != "" {
			return smoother.Feed(d.Text)
		}
		return nil
	}

	onDelta := route
	var splitter *providers.ThinkSplitter
	if model.Reasoning {
		splitter = providers.NewThinkSplitter(model.ReasoningTag, route)
		onDelta = func(d providers.Delta) error {
			if d.Reasoning != "" {
				if err := emit(schema.ReasoningChunk(d.Reasoning)); err != nil {
					return err
				}
			}
			if d.Text != "" {
				return splitter.Feed(d.Text)
			}
			return nil
		}
	}

	result, err := o.provider.ChatStream(ctx, conv, merged.Definitions(), opts, onDelta)
	if err != nil {
		return providers.StreamResult{}, &UpstreamError{Cause: err}
	}
	if splitter != nil {
		if err := splitter.Flush(); err != nil {
			return providers.StreamResult{}, err
		}
	}
	if err := smoother.Flush(); err != nil {
		return providers.StreamResult{}, err
	}
	return result, nil
}

func (o *Orchestrator) executeTool(ctx context.Context, merged *tools.ToolList, tc schema.ToolCall) string {
	t := merged.Get(tc.Name)
	if t == nil {
		return fmt.Sprintf("Error: Tool '%s' not found", tc.Name)
	}

	argsJSON, _ := json.Marshal(tc.Arguments)
	slog.Info("tool call", "name", tc.Name, "args", llmutils.Truncate(string(argsJSON), 200))

	out, err := t.Execute(ctx, tc.Arguments)
	if err != nil {
		slog.Error("tool failed", "name", tc.Name, "err", err)
		return fmt.Sprintf("Error: %v", err)
	}
	return out
}
