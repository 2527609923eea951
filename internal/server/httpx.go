package server

import (
	"encoding/json"
	"net/http"
)

// handlerFunc is a handler that may return an error
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// wrap converts a handlerFunc to an http.HandlerFunc by handling errors
func wrap(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a JSON error response with the given status code and message
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
