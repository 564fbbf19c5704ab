package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope every failing endpoint returns. Errors
// carries per-field validation messages and is omitted otherwise.
type ErrorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code. It sets the
// Content-Type header before the status line.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, code int, message string, fieldErrors ...string) {
	WriteJSON(w, code, ErrorBody{Message: message, Errors: fieldErrors})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for responses carrying tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
