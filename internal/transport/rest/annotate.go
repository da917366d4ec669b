package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/hanzi-reader/internal/domain"
	"github.com/heartmarshall/hanzi-reader/internal/pinyin"
	"github.com/heartmarshall/hanzi-reader/internal/service/annotation"
)

// maxBodyBytes bounds request bodies. The rune cap in the annotation service
// is the real input limit; this only stops oversized uploads early.
const maxBodyBytes = 1 << 20

type annotator interface {
	Annotate(ctx context.Context, text string) (annotation.Result, error)
}

// AnnotateHandler serves text annotation and tone conversion.
type AnnotateHandler struct {
	svc annotator
	log *slog.Logger
}

// NewAnnotateHandler creates an AnnotateHandler.
func NewAnnotateHandler(svc annotator, logger *slog.Logger) *AnnotateHandler {
	return &AnnotateHandler{svc: svc, log: logger.With("handler", "annotate")}
}

// AnnotateRequest is the body of POST /api/annotate.
type AnnotateRequest struct {
	Text string `json:"text"`
}

// ToneResponse is the body returned by GET /api/tone.
type ToneResponse struct {
	Input  string `json:"input"`
	Pinyin string `json:"pinyin"`
}

// Annotate handles POST /api/annotate.
func (h *AnnotateHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	var req AnnotateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return
		}
		writeError(w, r, h.log, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	result, err := h.svc.Annotate(r.Context(), req.Text)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Tone handles GET /api/tone?syllables=ni3+hao3.
func (h *AnnotateHandler) Tone(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("syllables")
	if strings.TrimSpace(input) == "" {
		writeError(w, r, h.log, domain.NewValidationError("syllables", "required"))
		return
	}

	writeJSON(w, http.StatusOK, ToneResponse{
		Input:  input,
		Pinyin: pinyin.MarkSyllables(input),
	})
}
