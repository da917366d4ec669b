package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/hanzi-reader/internal/domain"
)

// notReadyMessage is shown to clients while the dictionary is loading.
const notReadyMessage = "dictionary is still loading, please try again in a moment"

// notReadyRetryAfter is the Retry-After hint, in seconds, for 503 responses.
const notReadyRetryAfter = 5

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain errors to HTTP statuses. Unknown errors are logged
// and reported as 500 without leaking details.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: ve.Errors})
	case errors.Is(err, domain.ErrDictionaryNotReady):
		w.Header().Set("Retry-After", strconv.Itoa(notReadyRetryAfter))
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: notReadyMessage})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
