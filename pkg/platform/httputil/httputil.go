// Package httputil centralizes the JSON envelopes shared by all handlers.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the shared error envelope. Unexpected faults surface as
// a generic server error carrying the fault's message.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
