// Package providers implements the hosted-model clients: the streaming Groq
// chat-completions call and the Groq speech synthesis call. Both are direct
// HTTP against the OpenAI-compatible API surface.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/excelaipro/excelaipro/internal/schema"
)

// ChatOptions configures one streaming chat request.
type ChatOptions struct {
	Model string
	// ReasoningRaw asks Groq to leave the thinking trace inline in the
	// content, delimited by think tags. Attached only for reasoning models.
	ReasoningRaw bool
}

// Delta is one incremental piece of model output.
type Delta struct {
	Text      string
	Reasoning string
}

// StreamResult is the terminal state of one streamed completion.
type StreamResult struct {
	Content      string
	ToolCalls    []schema.ToolCall
	FinishReason string
}

// GroqProvider makes direct HTTP calls to the Groq API.
type GroqProvider struct {
	apiKey     string
	apiBase    string
	httpClient *http.Client
}

// NewGroqProvider constructs a provider from raw config values.
func NewGroqProvider(apiKey, apiBase string) *GroqProvider {
	return &GroqProvider{
		apiKey:     apiKey,
		apiBase:    strings.TrimRight(apiBase, "/"),
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// ChatStream opens a streaming chat completion and invokes onDelta for every
// incremental piece of output as it arrives. It returns the accumulated
// terminal state once the stream ends. An onDelta error cancels consumption
// (used for client disconnects).
func (p *GroqProvider) ChatStream(
	ctx context.Context,
	messages schema.Messages,
	tools []map[string]any,
	opts ChatOptions,
	onDelta func(Delta) error,
) (StreamResult, error) {
	body := map[string]any{
		"model":    opts.Model,
		"messages": sanitizeMessages(messages),
		"stream":   true,
	}
	if len(tools) > 0 {
		body["tools"] = tools
		body["tool_choice"] = "auto"
	}
	if opts.ReasoningRaw {
		body["reasoning_format"] = "raw"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return StreamResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiBase+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return StreamResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return StreamResult{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return StreamResult{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, friendlyHTTPError(resp.StatusCode, raw))
	}

	return consumeChatSSE(ctx, resp.Body, onDelta)
}

// ---------------------------------------------------------------------------
// Message sanitisation
// ---------------------------------------------------------------------------

// messageToWireMap converts a typed Message to the OpenAI wire-format map.
func messageToWireMap(m schema.Message) map[string]any {
	wire := map[string]any{
		"role":    m.Role,
		"content": m.Content,
	}
	if m.Role == "assistant" {
		// Strict providers require "content" even for tool-call-only messages.
		if m.Content == nil {
			wire["content"] = nil
		}
		if len(m.ToolCalls) > 0 {
			raw := make([]map[string]any, len(m.ToolCalls))
			for i, tc := range m.ToolCalls {
				raw[i] = tc.ToWireMap()
			}
			wire["tool_calls"] = raw
		}
	}
	if m.Role == "tool" {
		wire["tool_call_id"] = m.ToolCallID
		wire["name"] = m.ToolName
	}
	return wire
}

func sanitizeMessages(messages schema.Messages) []map[string]any {
	out := make([]map[string]any, 0, len(messages.Messages))
	for _, m := range messages.Messages {
		out = append(out, messageToWireMap(m))
	}
	return out
}

// ---------------------------------------------------------------------------
// Utilities
// ---------------------------------------------------------------------------

func friendlyHTTPError(code int, body []byte) string {
	if code == http.StatusTooManyRequests {
		return "rate limit exceeded"
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		s = s[:300]
	}
	return s
}

// repairJSON attempts to unmarshal JSON, retrying after stripping trailing
// garbage characters. This handles some models that emit truncated tool
// arguments.
func repairJSON(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}

	if i := strings.LastIndex(raw, "}"); i >= 0 {
		if err := json.Unmarshal([]byte(raw[:i+1]), &out); err == nil {
			return out, nil
		}
	}

	return map[string]any{}, fmt.Errorf("cannot repair JSON: %s", raw)
}
