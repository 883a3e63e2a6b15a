package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/excelaipro/excelaipro/internal/schema"
)

// fakeGroq returns a test server that records the request body and answers
// with the given SSE lines.
func fakeGroq(t *testing.T, lines []string, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer gsk_test" {
			t.Errorf("unexpected auth header %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if gotBody != nil {
			if err := json.Unmarshal(raw, gotBody); err != nil {
				t.Errorf("request body not JSON: %v", err)
			}
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, l := range lines {
			fmt.Fprintf(w, "data: %s\n\n", l)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestChatStream_EndToEnd(t *testing.T) {
	var body map[string]any
	srv := fakeGroq(t, []string{
		`{"choices":[{"delta":{"content":"hi there"},"finish_reason":"stop"}]}`,
	}, &body)
	defer srv.Close()

	p := NewGroqProvider("gsk_test", srv.URL)
	conv := schema.NewMessages(schema.NewSystemMessage("sys"), schema.NewUserMessage("hello"))

	var text strings.Builder
	result, err := p.ChatStream(context.Background(), conv, nil,
		ChatOptions{Model: "llama-3.1-8b-instant"},
		func(d Delta) error {
			text.WriteString(d.Text)
			return nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Content != "hi there" || text.String() != "hi there" {
		t.Errorf("content = %q, streamed = %q", result.Content, text.String())
	}

	if body["model"] != "llama-3.1-8b-instant" {
		t.Errorf("model = %v", body["model"])
	}
	if body["stream"] != true {
		t.Error("stream flag not set")
	}
	if _, present := body["reasoning_format"]; present {
		t.Error("reasoning_format must not be attached for non-reasoning models")
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 wire messages, got %d", len(msgs))
	}
}

func TestChatStream_ReasoningRawOption(t *testing.T) {
	var body map[string]any
	srv := fakeGroq(t, []string{
		`{"choices":[{"delta":{"content":"ok"},"finish_reason":"stop"}]}`,
	}, &body)
	defer srv.Close()

	p := NewGroqProvider("gsk_test", srv.URL)
	conv := schema.NewMessages(schema.NewUserMessage("hello"))

	_, err := p.ChatStream(context.Background(), conv, nil,
		ChatOptions{Model: "qwen-qwq-32b", ReasoningRaw: true},
		func(Delta) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["reasoning_format"] != "raw" {
		t.Errorf("reasoning_format = %v", body["reasoning_format"])
	}
}

func TestChatStream_ToolDefinitionsOnTheWire(t *testing.T) {
	var body map[string]any
	srv := fakeGroq(t, []string{
		`{"choices":[{"delta":{"content":"ok"},"finish_reason":"stop"}]}`,
	}, &body)
	defer srv.Close()

	p := NewGroqProvider("gsk_test", srv.URL)
	tools := []map[string]any{
		{"type": "function", "function": map[string]any{"name": "read_sheet"}},
	}

	_, err := p.ChatStream(context.Background(), schema.NewMessages(schema.NewUserMessage("hi")), tools,
		ChatOptions{Model: "llama-3.1-8b-instant"},
		func(Delta) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["tool_choice"] != "auto" {
		t.Errorf("tool_choice = %v", body["tool_choice"])
	}
	wireTools, _ := body["tools"].([]any)
	if len(wireTools) != 1 {
		t.Fatalf("expected 1 wire tool, got %d", len(wireTools))
	}
}

func TestChatStream_UpstreamHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"model overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewGroqProvider("gsk_test", srv.URL)
	_, err := p.ChatStream(context.Background(), schema.NewMessages(schema.NewUserMessage("hi")), nil,
		ChatOptions{Model: "llama-3.1-8b-instant"},
		func(Delta) error { return nil })
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error lacks cause: %v", err)
	}
}

func TestSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["voice"] != "Aaliyah-PlayAI" || body["response_format"] != "wav" {
			t.Errorf("unexpected body %v", body)
		}
		w.Write([]byte("RIFFfakewav"))
	}))
	defer srv.Close()

	p := NewGroqProvider("gsk_test", srv.URL)
	audio, err := p.Speech(context.Background(), "hello", SpeechOptions{Model: "playai-tts", Voice: "Aaliyah-PlayAI"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "RIFFfakewav" {
		t.Errorf("audio = %q", audio)
	}
}
