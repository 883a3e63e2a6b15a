package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/excelaipro/excelaipro/internal/schema"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// ChatWS handles GET /api/chat/ws: a websocket alternative to the SSE chat
// endpoint. The client sends one ChatRequest frame; the server streams chunk
// frames and closes when the turn ends. Each connection carries exactly one
// turn, mirroring the per-request lifecycle of the HTTP route.
func (h *Handler) ChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		slog.Error("websocket upgrade failed", "trace", TraceIDFromCtx(r.Context()), "err", err)
		return
	}
	defer conn.Close()

	var req schema.ChatRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(schema.Chunk{Type: schema.ChunkError, ErrorMessage: "invalid request frame"})
		return
	}

	emit := func(c schema.Chunk) error {
		_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
		return conn.WriteJSON(c)
	}

	if err := h.runner.Run(r.Context(), req, emit); err != nil {
		slog.Error("chat turn failed", "trace", TraceIDFromCtx(r.Context()), "err", err)
		_ = emit(schema.Chunk{Type: schema.ChunkError, ErrorMessage: err.Error()})
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(5*time.Second))
}
