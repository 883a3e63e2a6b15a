package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// SpeechOptions configures one synthesis request.
type SpeechOptions struct {
	Model string
	Voice string
}

// Speech synthesises text to WAV audio via the Groq speech endpoint and
// returns the raw bytes.
func (p *GroqProvider) Speech(ctx context.Context, text string, opts SpeechOptions) ([]byte, error) {
	body := map[string]any{
		"model":           opts.Model,
		"voice":           opts.Voice,
		"response_format": "wav",
		"input":           text,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiBase+"/audio/speech", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, friendlyHTTPError(resp.StatusCode, raw))
	}
	return io.ReadAll(resp.Body)
}
