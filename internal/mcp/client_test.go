package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeMCPServer answers the JSON-RPC methods a Client issues during a normal
// turn: initialize, tools/list, tools/call. Responses can be delivered as
// plain JSON or wrapped in an SSE frame.
type fakeMCPServer struct {
	t            *testing.T
	sse          bool
	toolResult   map[string]any
	calls        []string
	lastArgs     map[string]any
	deleteCalled bool
	sessionSeen  string
}

func (f *fakeMCPServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			f.deleteCalled = true
			f.sessionSeen = r.Header.Get("Mcp-Session-Id")
			w.WriteHeader(http.StatusOK)
			return
		}

		var req struct {
			ID     json.Number    `json:"id"`
			Method string         `json:"method"`
			Params map[string]any `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			f.t.Errorf("bad request body: %v", err)
		}
		f.calls = append(f.calls, req.Method)

		// Notifications carry no id and get no body.
		if req.ID == "" {
			w.WriteHeader(http.StatusAccepted)
			return
		}

		var result map[string]any
		switch req.Method {
		case "initialize":
			w.Header().Set("Mcp-Session-Id", "sess-42")
			result = map[string]any{
				"protocolVersion": protocolVersion,
				"serverInfo":      map[string]any{"name": "fake"},
			}
		case "tools/list":
			result = map[string]any{
				"tools": []map[string]any{
					{
						"name":        "read_sheet",
						"description": "Read a range of cells",
						"inputSchema": map[string]any{"type": "object"},
					},
					{
						"name":        "write_cell",
						"description": "Write a single cell",
					},
					{"name": ""}, // nameless entries are skipped
				},
			}
		case "tools/call":
			f.lastArgs, _ = req.Params["arguments"].(map[string]any)
			result = f.toolResult
		default:
			f.t.Errorf("unexpected method %q", req.Method)
		}

		payload, _ := json.Marshal(map[string]any{
			"jsonrpc": "2.0", "id": req.ID, "result": result,
		})
		if f.sse {
			w.Header().Set("Content-Type", "text/event-stream")
			// Interleave an unrelated notification before the response.
			fmt.Fprint(w, "data: {\"jsonrpc\":\"2.0\",\"method\":\"notifications/progress\"}\n\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}
}

func TestDialAndListTools(t *testing.T) {
	fake := &fakeMCPServer{t: t}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client, err := Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	tools, err := client.Tools(context.Background())
	if err != nil {
		t.Fatalf("Tools: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	if tools[0].Name() != "read_sheet" || tools[1].Name() != "write_cell" {
		t.Errorf("tool names = %q, %q", tools[0].Name(), tools[1].Name())
	}
	// Missing inputSchema falls back to an empty object schema.
	if !strings.Contains(string(tools[1].Parameters()), `"object"`) {
		t.Errorf("fallback schema = %s", tools[1].Parameters())
	}

	wantCalls := []string{"initialize", "notifications/initialized", "tools/list"}
	if len(fake.calls) != len(wantCalls) {
		t.Fatalf("calls = %v", fake.calls)
	}
	for i, m := range wantCalls {
		if fake.calls[i] != m {
			t.Errorf("call %d = %q, want %q", i, fake.calls[i], m)
		}
	}
}

func TestCallToolJoinsTextBlocks(t *testing.T) {
	fake := &fakeMCPServer{t: t, toolResult: map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": "A1: 10"},
			{"type": "text", "text": "A2: 20"},
		},
	}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client, err := Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	out, err := client.CallTool(context.Background(), "read_sheet", map[string]any{"range": "A1:A2"})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if out != "A1: 10\nA2: 20" {
		t.Errorf("output = %q", out)
	}
	if fake.lastArgs["range"] != "A1:A2" {
		t.Errorf("forwarded args = %v", fake.lastArgs)
	}
}

func TestCallToolEmptyResult(t *testing.T) {
	fake := &fakeMCPServer{t: t, toolResult: map[string]any{"content": []map[string]any{}}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client, err := Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	out, err := client.CallTool(context.Background(), "noop", nil)
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if out != "(no output)" {
		t.Errorf("output = %q", out)
	}
}

func TestCallToolIsError(t *testing.T) {
	fake := &fakeMCPServer{t: t, toolResult: map[string]any{
		"content": []map[string]any{{"type": "text", "text": "sheet not found"}},
		"isError": true,
	}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client, err := Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	_, err = client.CallTool(context.Background(), "read_sheet", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "sheet not found") {
		t.Errorf("error = %v", err)
	}
}

func TestSSEResponseFraming(t *testing.T) {
	fake := &fakeMCPServer{t: t, sse: true, toolResult: map[string]any{
		"content": []map[string]any{{"type": "text", "text": "done"}},
	}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client, err := Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	out, err := client.CallTool(context.Background(), "write_cell", map[string]any{"cell": "B2"})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if out != "done" {
		t.Errorf("output = %q", out)
	}
}

func TestCloseReleasesSession(t *testing.T) {
	fake := &fakeMCPServer{t: t}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client, err := Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	client.Close()
	if !fake.deleteCalled {
		t.Fatal("Close did not issue DELETE")
	}
	if fake.sessionSeen != "sess-42" {
		t.Errorf("session id = %q", fake.sessionSeen)
	}
}

func TestDialFailurePreservesCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "tool server down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := Dial(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "connect to MCP server") {
		t.Errorf("missing context: %v", err)
	}
	if !strings.Contains(err.Error(), "tool server down") {
		t.Errorf("cause not preserved: %v", err)
	}
}
