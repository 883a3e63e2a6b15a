// Package httpapi exposes the browser-facing HTTP surface: the streaming chat
// endpoint, file upload, speech synthesis, and the model catalog.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/excelaipro/excelaipro/internal/config"
	"github.com/excelaipro/excelaipro/internal/models"
	"github.com/excelaipro/excelaipro/internal/providers"
	"github.com/excelaipro/excelaipro/internal/schema"
	"github.com/excelaipro/excelaipro/internal/upload"
)

// TurnRunner drives one chat turn. Implemented by chat.Orchestrator.
type TurnRunner interface {
	Run(ctx context.Context, req schema.ChatRequest, emit func(schema.Chunk) error) error
}

// SpeechSynthesizer turns text into WAV bytes. Implemented by the Groq provider.
type SpeechSynthesizer interface {
	Speech(ctx context.Context, text string, opts providers.SpeechOptions) ([]byte, error)
}

// Handler carries the dependencies of every route.
type Handler struct {
	cfg    *config.Config
	runner TurnRunner
	speech SpeechSynthesizer
	store  *upload.Store
}

func NewHandler(cfg *config.Config, runner TurnRunner, speech SpeechSynthesizer, store *upload.Store) *Handler {
	return &Handler{cfg: cfg, runner: runner, speech: speech, store: store}
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Models returns the registry's model catalog for the picker.
func (h *Handler) Models(w http.ResponseWriter, _ *http.Request) {
	type entry struct {
		ID        string `json:"id"`
		Label     string `json:"label"`
		Reasoning bool   `json:"reasoning"`
	}
	out := struct {
		Models  []entry `json:"models"`
		Default string  `json:"default"`
	}{Default: models.DefaultID}
	for _, m := range models.MODELS {
		out.Models = append(out.Models, entry{ID: m.ID, Label: m.Label(), Reasoning: m.Reasoning})
	}
	writeJSON(w, http.StatusOK, out)
}

// Chat handles POST /api/chat: it runs one turn and streams chunks back as
// server-sent events, flushing per chunk. A failure before the first chunk
// becomes the structured api_error payload; after that the flushed prefix
// stands and the stream ends with an error event.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req schema.ChatRequest
	if err := decodeBody(r, &req); err != nil {
		slog.Error("chat request decode failed", "trace", TraceIDFromCtx(r.Context()), "err", err)
		writeAPIError(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeAPIError(w, "streaming unsupported by connection")
		return
	}

	started := false
	emit := func(c schema.Chunk) error {
		if !started {
			w.Header().Set("Content-Type", "text/event-stream")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("Connection", "keep-alive")
			w.Header().Set("X-Accel-Buffering", "no")
			w.WriteHeader(http.StatusOK)
			started = true
		}
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := h.runner.Run(r.Context(), req, emit); err != nil {
		slog.Error("chat turn failed", "trace", TraceIDFromCtx(r.Context()), "err", err)
		if !started {
			writeAPIError(w, err.Error())
			return
		}
		// Prefix already delivered; terminate the stream with an error event.
		_ = emit(schema.Chunk{Type: schema.ChunkError, ErrorMessage: err.Error()})
	}
}

// Upload handles POST /api/upload: multipart form with one or more files
// under the "files" field.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		slog.Error("upload parse failed", "trace", TraceIDFromCtx(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("upload failed: %v", err),
		})
		return
	}

	var refs []schema.FileReference
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			slog.Error("upload open failed", "file", fh.Filename, "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("upload failed: %v", err),
			})
			return
		}
		ref, err := h.store.Save(fh.Filename, f)
		f.Close()
		if err != nil {
			slog.Error("upload write failed", "file", fh.Filename, "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("upload failed: %v", err),
			})
			return
		}
		slog.Info("file uploaded", "name", ref.OriginalName, "stored", ref.Filename, "size", ref.Size)
		refs = append(refs, ref)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"files":   refs,
	})
}

// TTS handles POST /api/tts: synthesises the given text and returns raw WAV
// bytes. Errors are plain text, per the original contract of this endpoint.
func (h *Handler) TTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &req); err != nil || req.Text == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	audio, err := h.speech.Speech(r.Context(), req.Text, providers.SpeechOptions{
		Model: h.cfg.TTSModel,
		Voice: h.cfg.TTSVoice,
	})
	if err != nil {
		slog.Error("tts failed", "trace", TraceIDFromCtx(r.Context()), "err", err)
		http.Error(w, fmt.Sprintf("Failed to generate speech: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(audio)
}
