// Package mcp implements the tool bridge: a JSON-RPC client for an external
// MCP server over the streamable HTTP transport. A Client is request-scoped:
// dialled, used for one chat turn, and closed; there is no pooling or
// cross-request reuse.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

const protocolVersion = "2025-03-26"

// Client manages JSON-RPC communication with a single MCP server.
type Client struct {
	endpoint   string
	httpClient *http.Client
	nextID     int64
	sessionID  string // Mcp-Session-Id assigned by the server on initialize
}

// Dial connects to the MCP server at endpoint and performs the initialize
// handshake. The underlying transport failure reason is preserved in the
// returned error so callers can report a precise cause.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	if err := c.initialize(ctx); err != nil {
		return nil, fmt.Errorf("connect to MCP server: %w", err)
	}
	return c, nil
}

// Tools returns the tools exposed by the server, each wrapped as a
// schema.Tool whose Execute issues tools/call on this client.
func (c *Client) Tools(ctx context.Context) ([]*RemoteTool, error) {
	resp, err := c.call(ctx, "tools/list", nil)
	if err != nil {
		return nil, fmt.Errorf("list MCP tools: %w", err)
	}
	var result struct {
		Tools []struct {
			Name        string          `json:"name"`
			Description string          `json:"description"`
			InputSchema json.RawMessage `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("list MCP tools: %w", err)
	}

	out := make([]*RemoteTool, 0, len(result.Tools))
	for _, def := range result.Tools {
		if def.Name == "" {
			continue
		}
		params := def.InputSchema
		if len(params) == 0 {
			params = json.RawMessage(`{"type":"object","properties":{}}`)
		}
		out = append(out, &RemoteTool{
			client:      c,
			name:        def.Name,
			description: def.Description,
			parameters:  params,
		})
	}
	return out, nil
}

// CallTool invokes a named tool on the server and joins the text blocks of
// its result.
func (c *Client) CallTool(ctx context.Context, toolName string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	resp, err := c.call(ctx, "tools/call", map[string]any{
		"name":      toolName,
		"arguments": args,
	})
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return string(resp), nil
	}

	var parts []string
	for _, block := range result.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	out := strings.Join(parts, "\n")
	if result.IsError {
		return "", fmt.Errorf("MCP tool %s: %s", toolName, out)
	}
	if out == "" {
		out = "(no output)"
	}
	return out, nil
}

// Close releases the server-side session, if one was assigned.
// Errors are ignored; the session expires on its own.
func (c *Client) Close() {
	if c.sessionID == "" {
		return
	}
	req, err := http.NewRequest(http.MethodDelete, c.endpoint, nil)
	if err != nil {
		return
	}
	req.Header.Set("Mcp-Session-Id", c.sessionID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

// ---------------------------------------------------------------------------
// JSON-RPC plumbing
// ---------------------------------------------------------------------------

func (c *Client) initialize(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "excelaipro", "version": "1.0"},
	}
	if _, err := c.call(ctx, "initialize", params); err != nil {
		return err
	}
	// Initialized notification: no id, no response expected.
	c.notify(ctx, "notifications/initialized")
	return nil
}

func (c *Client) notify(ctx context.Context, method string) {
	data, _ := json.Marshal(map[string]any{"jsonrpc": "2.0", "method": method})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return
	}
	c.setHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := atomic.AddInt64(&c.nextID, 1)
	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if sid := resp.Header.Get("Mcp-Session-Id"); sid != "" {
		c.sessionID = sid
	}
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var rpcResp rpcResponse
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		rpcResp, err = readSSEResponse(resp.Body, id)
	} else {
		err = json.NewDecoder(resp.Body).Decode(&rpcResp)
	}
	if err != nil {
		return nil, err
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("MCP error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	return rpcResp.Result, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if c.sessionID != "" {
		req.Header.Set("Mcp-Session-Id", c.sessionID)
	}
}

type rpcResponse struct {
	ID     json.Number     `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// readSSEResponse scans a text/event-stream body for the JSON-RPC response
// carrying the given request id. Streamable HTTP servers may interleave other
// notifications on the same stream; those are skipped.
func readSSEResponse(body io.Reader, id int64) (rpcResponse, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(line[5:])
		if payload == "" {
			continue
		}
		var resp rpcResponse
		if err := json.Unmarshal([]byte(payload), &resp); err != nil {
			continue
		}
		if n, err := resp.ID.Int64(); err == nil && n == id {
			return resp, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return rpcResponse{}, fmt.Errorf("read MCP event stream: %w", err)
	}
	return rpcResponse{}, fmt.Errorf("no response for request %d on event stream", id)
}
