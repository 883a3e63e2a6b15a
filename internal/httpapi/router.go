package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP router around a fully constructed Handler.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(Trace)

	r.Get("/api/health", h.Health)
	r.Get("/api/models", h.Models)
	r.Post("/api/chat", h.Chat)
	r.Get("/api/chat/ws", h.ChatWS)
	r.Post("/api/upload", h.Upload)
	r.Post("/api/tts", h.TTS)

	return r
}
