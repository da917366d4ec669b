package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/hanzi-reader/internal/domain"
)

type entryLookuper interface {
	Lookup(key string) (domain.DictionaryEntry, error)
}

// LookupHandler serves single headword lookups.
type LookupHandler struct {
	dict entryLookuper
	log  *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(dict entryLookuper, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{dict: dict, log: logger.With("handler", "lookup")}
}

// Lookup handles GET /api/lookup?key=你.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.URL.Query().Get("key"))
	if key == "" {
		writeError(w, r, h.log, domain.NewValidationError("key", "required"))
		return
	}

	entry, err := h.dict.Lookup(key)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
