// Package annotation turns raw text into a per-character stream annotated
// with pinyin and an English gloss.
package annotation

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/hanzi-reader/internal/domain"
)

// CJK Unified Ideographs block.
const (
	cjkFirst = '\u4e00'
	cjkLast  = '\u9fff'
)

// Lookuper resolves a headword to its dictionary entry.
type Lookuper interface {
	Lookup(key string) (domain.DictionaryEntry, bool)
}

// IsChinese reports whether r lies in the CJK Unified Ideographs block.
func IsChinese(r rune) bool {
	return r >= cjkFirst && r <= cjkLast
}

// Convert annotates text one code point at a time. Lines are separated by
// '\n'; a line-break record is emitted between consecutive lines. Only Chinese
// characters are looked up, one character per lookup. A nil dict behaves as
// an empty dictionary.
//
// Convert keeps no state between calls and is safe for concurrent use as long
// as dict is.
func Convert(text string, dict Lookuper) []domain.AnnotatedChar {
	lines := strings.Split(text, "\n")
	out := make([]domain.AnnotatedChar, 0, utf8.RuneCountInString(text))

	for li, line := range lines {
		ci := 0
		for _, r := range line {
			out = append(out, annotateRune(dict, li, ci, r))
			ci++
		}
		if li < len(lines)-1 {
			out = append(out, domain.AnnotatedChar{
				Char:        domain.LineBreak,
				ID:          domain.LineBreakID(li),
				IsLineBreak: true,
			})
		}
	}

	return out
}

func annotateRune(dict Lookuper, line, index int, r rune) domain.AnnotatedChar {
	c := domain.AnnotatedChar{
		Char:      string(r),
		ID:        domain.CharID(line, index),
		IsChinese: IsChinese(r),
	}
	if c.IsChinese {
		c.Pinyin, c.Meaning = lookupChar(dict, c.Char)
	}
	return c
}

// lookupChar returns the reading and gloss for a single character. A lookup
// that panics degrades to error values for this character only.
func lookupChar(dict Lookuper, char string) (pinyin, meaning string) {
	defer func() {
		if recover() != nil {
			pinyin, meaning = domain.PinyinError, domain.MeaningError
		}
	}()

	if dict == nil {
		return "", domain.MeaningNotAvailable
	}
	entry, ok := dict.Lookup(char)
	if !ok {
		return "", domain.MeaningNotAvailable
	}

	meaning = entry.English
	if meaning == "" {
		meaning = domain.MeaningNotAvailable
	}
	return entry.Pinyin, meaning
}

// PlainText rebuilds the annotated text, line breaks included. This is the
// text handed to speech synthesis.
func PlainText(chars []domain.AnnotatedChar) string {
	var b strings.Builder
	for _, c := range chars {
		b.WriteString(c.Char)
	}
	return b.String()
}

// Summary counts what an annotation run produced.
type Summary struct {
	Characters int `json:"characters"` // input code points, line breaks excluded
	Lines      int `json:"lines"`
	Chinese    int `json:"chinese"`
	Annotated  int `json:"annotated"` // Chinese characters found in the dictionary
	Missing    int `json:"missing"`
	Errors     int `json:"errors"`
}

// Summarize computes a Summary over chars.
func Summarize(chars []domain.AnnotatedChar) Summary {
	s := Summary{Lines: 1}
	if len(chars) == 0 {
		return s
	}
	for _, c := range chars {
		if c.IsLineBreak {
			s.Lines++
			continue
		}
		s.Characters++
		if !c.IsChinese {
			continue
		}
		s.Chinese++
		switch {
		case c.Meaning == domain.MeaningError:
			s.Errors++
		case c.Pinyin == "":
			s.Missing++
		default:
			s.Annotated++
		}
	}
	return s
}
