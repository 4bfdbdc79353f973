package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"folder-playlist/internal/host"
	"folder-playlist/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// statusFor maps a session error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, host.ErrNoActiveItem), errors.Is(err, host.ErrMalformedPath), errors.Is(err, host.ErrUnknownCommand):
		return http.StatusBadRequest
	case errors.Is(err, host.ErrUnreadableFolder):
		return http.StatusUnprocessableEntity
	case errors.Is(err, host.ErrNotActive):
		return http.StatusConflict
	case errors.Is(err, host.ErrPlayback):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
