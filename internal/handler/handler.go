// Package handler contains the HTTP surface: request validation, response
// envelope shaping, and middleware. All responses use the envelope
// {"success":true, ...} or {"error":true, "message": ...}.
package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
)

// Handler carries cross-cutting HTTP concerns (CORS, health).
type Handler struct {
	frontendURL string
}

// New creates the base Handler. frontendURL is the allowed CORS origin.
func New(frontendURL string) *Handler {
	return &Handler{frontendURL: frontendURL}
}

// CORS allows the configured frontend origin and answers preflights.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// emailPattern is the standard loose address check: something@something.tld
// with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError sends the failure envelope with a human-readable message.
// Upstream bodies and internal details never pass through here.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": true, "message": message})
}
