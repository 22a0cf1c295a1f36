package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gagyebu/internal/core"
	applog "gagyebu/internal/log"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON writes a success or informational response using the common envelope.
func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data})
}

// writeError writes an error response with the shared envelope structure.
func writeError(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Code: status, Message: message})
}

// writeServiceError maps a service error to a status. Validation problems
// are the caller's fault and echo their message; anything else is logged
// and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}

	applog.FromContext(r.Context()).
		WithFields(applog.NewFields().WithOperation(op).WithError(err)).
		ErrorContext(r.Context(), "Request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "status", status, "error", err)
	}
}
