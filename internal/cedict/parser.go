// Package cedict parses CC-CEDICT dictionary text into a headword lookup table.
// Pure function: text in, table out. No I/O beyond the given reader.
package cedict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/heartmarshall/hanzi-reader/internal/domain"
	"github.com/heartmarshall/hanzi-reader/internal/pinyin"
)

// maxLineSize bounds a single dictionary line.
const maxLineSize = 1 << 20

var (
	// errSkipLine signals a comment or blank line.
	errSkipLine = errors.New("skip line")
	// errMalformed signals a line that does not have the entry layout.
	errMalformed = errors.New("malformed line")
)

// entryLine matches: TRAD SIMP [pin1 pin2] /gloss 1/gloss 2/.../
var entryLine = regexp.MustCompile(`^(\S+)\s+(\S+)\s+\[(.*?)\]\s+/(.*?)/`)

// ParseResult holds the parsed dictionary.
type ParseResult struct {
	Table *Table
	Stats Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	BlankLines   int
	SkippedLines int // lines that are neither comments nor valid entries
	ParsedLines  int // entries inserted into the table
	UniqueKeys   int
	Overwritten  int // keys replaced by a later line
}

// Parse reads CC-CEDICT text from r. Malformed lines, including lines longer
// than maxLineSize, are skipped and only counted; the only error is a failure
// to read r, in which case no table is returned.
func Parse(r io.Reader) (ParseResult, error) {
	table := newTable(1 << 16)
	var stats Stats

	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte
	for {
		line, tooLong, err := readLine(br, buf[:0])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{}, fmt.Errorf("read error: %w", err)
		}
		buf = line
		stats.TotalLines++

		if tooLong {
			stats.SkippedLines++
			continue
		}

		entry, err := ParseLine(string(line))
		switch {
		case errors.Is(err, errSkipLine):
			if len(line) > 0 && line[0] == '#' {
				stats.CommentLines++
			} else {
				stats.BlankLines++
			}
			continue
		case err != nil:
			stats.SkippedLines++
			continue
		}

		stats.ParsedLines++
		stats.Overwritten += table.insert(entry)
	}

	stats.UniqueKeys = table.Len()
	return ParseResult{Table: table, Stats: stats}, nil
}

// readLine appends the next line, without its "\n" or "\r\n" terminator, to
// buf. A line longer than maxLineSize is drained from br and reported with
// tooLong set and no content.
func readLine(br *bufio.Reader, buf []byte) (line []byte, tooLong bool, err error) {
	for {
		frag, isPrefix, rerr := br.ReadLine()
		if rerr != nil {
			return nil, false, rerr
		}
		if !tooLong {
			if len(buf)+len(frag) > maxLineSize {
				tooLong = true
				buf = buf[:0]
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			return buf, tooLong, nil
		}
	}
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// ParseLine parses a single dictionary line into an entry with tone-marked
// pinyin. Comment and blank lines yield errSkipLine, lines without the entry
// layout or without a reading yield errMalformed.
func ParseLine(line string) (domain.DictionaryEntry, error) {
	if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
		return domain.DictionaryEntry{}, errSkipLine
	}

	m := entryLine.FindStringSubmatch(line)
	if m == nil {
		return domain.DictionaryEntry{}, errMalformed
	}

	entry := domain.DictionaryEntry{
		Traditional: strings.TrimSpace(m[1]),
		Simplified:  strings.TrimSpace(m[2]),
		Pinyin:      pinyin.MarkSyllables(m[3]),
		English:     strings.TrimSpace(m[4]),
	}
	if !entry.Valid() {
		return domain.DictionaryEntry{}, errMalformed
	}

	return entry, nil
}
