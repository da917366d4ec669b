package domain

// DictionaryEntry is one parsed dictionary line. Values are immutable once
// built; the lookup table hands out copies.
type DictionaryEntry struct {
	Traditional string `json:"traditional"`
	Simplified  string `json:"simplified"`
	Pinyin      string `json:"pinyin"`  // space-separated, tone-marked syllables
	English     string `json:"english"` // first gloss segment, may be empty
}

// Valid reports whether the entry carries every field a stored entry must have.
func (e DictionaryEntry) Valid() bool {
	return e.Traditional != "" && e.Simplified != "" && e.Pinyin != ""
}
