package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/excelaipro/excelaipro/internal/schema"
)

// chatDelta is the subset of a streamed chat-completion chunk we care about.
type chatDelta struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			Reasoning string `json:"reasoning"`
			ToolCalls []struct {
				Index    int    `json:"index"`
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// consumeChatSSE parses the provider's SSE body, forwarding content and
// reasoning deltas to onDelta and accumulating tool calls by index until the
// stream terminates.
func consumeChatSSE(ctx context.Context, body io.Reader, onDelta func(Delta) error) (StreamResult, error) {
	type tcBuf struct {
		id        string
		name      string
		arguments strings.Builder
	}

	var (
		content      strings.Builder
		tcBuffers    []*tcBuf
		finishReason = "stop"
	)

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return StreamResult{}, ctx.Err()
		default:
		}

		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(line[5:])
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk chatDelta
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue // skip malformed keep-alive lines
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]

		if choice.Delta.Content != "" || choice.Delta.Reasoning != "" {
			content.WriteString(choice.Delta.Content)
			if err := onDelta(Delta{Text: choice.Delta.Content, Reasoning: choice.Delta.Reasoning}); err != nil {
				return StreamResult{}, err
			}
		}

		for _, tc := range choice.Delta.ToolCalls {
			for tc.Index >= len(tcBuffers) {
				tcBuffers = append(tcBuffers, &tcBuf{})
			}
			buf := tcBuffers[tc.Index]
			if tc.ID != "" {
				buf.id = tc.ID
			}
			if tc.Function.Name != "" {
				buf.name = tc.Function.Name
			}
			buf.arguments.WriteString(tc.Function.Arguments)
		}

		if choice.FinishReason != "" {
			finishReason = choice.FinishReason
		}
	}
	if err := scanner.Err(); err != nil {
		return StreamResult{}, err
	}

	var toolCalls []schema.ToolCall
	for _, buf := range tcBuffers {
		if buf.name == "" {
			continue
		}
		args, err := repairJSON(buf.arguments.String())
		if err != nil {
			slog.Warn("failed to parse tool arguments", "tool", buf.name, "err", err)
			args = map[string]any{}
		}
		toolCalls = append(toolCalls, schema.ToolCall{
			ID:        buf.id,
			Name:      buf.name,
			Arguments: args,
		})
	}

	return StreamResult{
		Content:      content.String(),
		ToolCalls:    toolCalls,
		FinishReason: finishReason,
	}, nil
}
