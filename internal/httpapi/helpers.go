package httpapi

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAPIError emits the structured error payload the browser client parses.
// The message carries the underlying cause, never a bare generic string.
func writeAPIError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"errorMessage": message,
		"type":         "api_error",
	})
}

func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
