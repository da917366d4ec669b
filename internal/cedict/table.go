package cedict

import (
	"slices"

	"github.com/heartmarshall/hanzi-reader/internal/domain"
)

// Table maps a headword (traditional or simplified) to its dictionary entry.
// A Table is filled once by Parse and never modified afterwards, so it can be
// shared by any number of readers without locking.
//
// When two lines produce the same headword the later line wins.
type Table struct {
	entries map[string]domain.DictionaryEntry
}

func newTable(capacity int) *Table {
	return &Table{entries: make(map[string]domain.DictionaryEntry, capacity)}
}

// EmptyTable returns a table with no entries. Every lookup misses.
func EmptyTable() *Table {
	return newTable(0)
}

// Lookup returns the entry stored under key. A nil table behaves as empty.
func (t *Table) Lookup(key string) (domain.DictionaryEntry, bool) {
	if t == nil {
		return domain.DictionaryEntry{}, false
	}
	e, ok := t.entries[key]
	return e, ok
}

// Len returns the number of headwords in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns all headwords in sorted order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// insert stores e under both headwords and returns how many existing keys
// it replaced.
func (t *Table) insert(e domain.DictionaryEntry) int {
	replaced := 0
	if _, ok := t.entries[e.Traditional]; ok {
		replaced++
	}
	t.entries[e.Traditional] = e

	if e.Simplified != e.Traditional {
		if _, ok := t.entries[e.Simplified]; ok {
			replaced++
		}
		t.entries[e.Simplified] = e
	}
	return replaced
}
