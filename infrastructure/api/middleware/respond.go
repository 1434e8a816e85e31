package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corpuslabs/ragstore/domain/search"
)

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a JSON error response, mapping known domain
// errors to their status codes. Unknown errors become 500s with a generic
// message so internals do not leak to clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, search.ErrInvalidK):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, search.ErrStoreNotFound):
		status = http.StatusNotFound
		message = "store not found"
	case errors.Is(err, search.ErrModelMismatch):
		status = http.StatusConflict
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	WriteJSON(w, status, map[string]string{"error": message})
}
