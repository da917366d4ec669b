package domain

import "fmt"

// Display values used in place of a gloss or reading that could not be produced.
const (
	MeaningNotAvailable = "Definition not available"
	MeaningError        = "Processing error"
	PinyinError         = "Pinyin error"
)

// LineBreak is the Char value of an injected line-break record.
const LineBreak = "\n"

// AnnotatedChar is a single position in annotated text: one input code point
// or one injected line break.
type AnnotatedChar struct {
	Char        string `json:"char"`
	Pinyin      string `json:"pinyin"`
	Meaning     string `json:"meaning"`
	ID          string `json:"id"`
	IsChinese   bool   `json:"isChinese"`
	IsLineBreak bool   `json:"isLineBreak,omitempty"`
}

// CharID returns the identity of the character at (line, index).
func CharID(line, index int) string {
	return fmt.Sprintf("%d-%d", line, index)
}

// LineBreakID returns the identity of the break that follows line.
func LineBreakID(line int) string {
	return fmt.Sprintf("newline-%d", line)
}
