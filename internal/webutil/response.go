package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"focustube/internal/apperr"
)

// WriteJSON writes payload as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// WriteError maps err onto a status code and writes an {error} envelope.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", slog.Any("error", err))
	}
	WriteJSON(w, status, map[string]string{"error": err.Error()})
}

// StatusForError maps the apperr sentinels to HTTP status codes. Upstream
// and config failures stay 500: the caller cannot fix them by changing the
// request.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.ErrValidation
	}
	return nil
}
