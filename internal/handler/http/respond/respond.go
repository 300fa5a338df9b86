// Package respond provides utilities for sending HTTP responses in JSON
// format. Error responses are classified so internal details never leak to
// clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"vid-catalog/internal/domain/entity"
	"vid-catalog/internal/feed"
	"vid-catalog/internal/usecase/catalog"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error
// message, verbatim. Use SafeError for errors that may carry internals.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError maps an error to a response the client may see. Typed request
// errors (validation, malformed feed, oversize batch, missing parameters)
// return their message with the matching 4xx status; everything else is
// logged and reported as a generic internal server error.
func SafeError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	if code, ok := clientStatus(err); ok {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error", slog.Any("error", err))
	JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// clientStatus returns the HTTP status for errors that are safe to expose.
func clientStatus(err error) (int, bool) {
	var validationErr *entity.ValidationError
	var missingErr *feed.MissingFieldError
	var timestampErr *feed.InvalidTimestampError
	var valueErr *feed.InvalidValueError
	var batchErr *catalog.BatchTooLargeError

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &missingErr),
		errors.As(err, &timestampErr),
		errors.As(err, &valueErr),
		errors.Is(err, feed.ErrMalformedFeed),
		errors.Is(err, catalog.ErrChannelRequired),
		errors.Is(err, catalog.ErrKeywordRequired),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest, true
	case errors.As(err, &batchErr):
		return http.StatusRequestEntityTooLarge, true
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound, true
	}
	return 0, false
}
