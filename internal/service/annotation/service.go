package annotation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/hanzi-reader/internal/cedict"
	"github.com/heartmarshall/hanzi-reader/internal/domain"
)

type dictionaryStore interface {
	Ready() bool
	Table() *cedict.Table
}

// Service gates annotation on dictionary readiness and validates input.
type Service struct {
	log      *slog.Logger
	store    dictionaryStore
	maxRunes int
}

// NewService creates an annotation Service. maxRunes caps the input length;
// zero or less disables the cap.
func NewService(logger *slog.Logger, store dictionaryStore, maxRunes int) *Service {
	return &Service{
		log:      logger.With("service", "annotation"),
		store:    store,
		maxRunes: maxRunes,
	}
}

// Result is the output of one Annotate call.
type Result struct {
	Chars   []domain.AnnotatedChar `json:"chars"`
	Summary Summary                `json:"summary"`
	Text    string                 `json:"text"` // for speech synthesis
}

// Annotate converts text against the current dictionary snapshot.
// It returns domain.ErrDictionaryNotReady until the first load completes.
func (s *Service) Annotate(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, domain.NewValidationError("text", "required")
	}
	if s.maxRunes > 0 {
		if n := utf8.RuneCountInString(text); n > s.maxRunes {
			return Result{}, domain.NewValidationError("text",
				fmt.Sprintf("must be at most %d characters (got %d)", s.maxRunes, n))
		}
	}

	if !s.store.Ready() {
		return Result{}, domain.ErrDictionaryNotReady
	}

	chars := Convert(text, s.store.Table())
	summary := Summarize(chars)

	if summary.Errors > 0 {
		s.log.WarnContext(ctx, "annotation degraded",
			slog.Int("errors", summary.Errors),
			slog.Int("characters", summary.Characters),
		)
	}
	s.log.DebugContext(ctx, "annotated text",
		slog.Int("characters", summary.Characters),
		slog.Int("chinese", summary.Chinese),
		slog.Int("missing", summary.Missing),
	)

	return Result{Chars: chars, Summary: summary, Text: PlainText(chars)}, nil
}
