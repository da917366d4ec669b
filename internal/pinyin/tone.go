// Package pinyin converts numbered-tone pinyin ("ni3 hao3") into its
// tone-marked form ("nǐ hǎo").
//
// The tone mark goes on the first vowel of the syllable. This differs from
// standard orthography for vowel clusters ("xiao3" becomes "xǐao", not
// "xiǎo") and is kept as-is so readings match the existing data.
package pinyin

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// numberedSyllable matches a run of letters followed by a tone digit.
// "u:" is accepted as a letter so CEDICT readings such as "lu:4" convert.
var numberedSyllable = regexp.MustCompile(`(?i)((?:u:|[a-zü])+?)([1-5])`)

// toneForms holds, per vowel, the forms for tones 1-4 and the neutral tone.
// 'v' stands in for ü.
var toneForms = map[byte][5]string{
	'a': {"ā", "á", "ǎ", "à", "a"},
	'e': {"ē", "é", "ě", "è", "e"},
	'i': {"ī", "í", "ǐ", "ì", "i"},
	'o': {"ō", "ó", "ǒ", "ò", "o"},
	'u': {"ū", "ú", "ǔ", "ù", "u"},
	'v': {"ǖ", "ǘ", "ǚ", "ǜ", "ü"},
}

// ToneMark converts a single numbered syllable ("ma1") to its marked form
// ("mā"). Input with no letters-plus-tone-digit run is returned unchanged,
// byte for byte; otherwise it is NFC-normalized before conversion. A syllable
// with no markable vowel loses its digit and is otherwise unchanged.
func ToneMark(syllable string) string {
	if syllable == "" {
		return ""
	}
	nfc := norm.NFC.String(syllable)
	if !numberedSyllable.MatchString(nfc) {
		return syllable
	}
	return numberedSyllable.ReplaceAllStringFunc(nfc, markRun)
}

// MarkSyllables applies ToneMark to every whitespace-separated syllable of
// s and joins the results with single spaces.
func MarkSyllables(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = ToneMark(f)
	}
	return strings.Join(fields, " ")
}

// markRun converts one match of numberedSyllable: letters plus one tone digit.
func markRun(run string) string {
	tone := int(run[len(run)-1] - '1')
	letters := run[:len(run)-1]

	letters = strings.ReplaceAll(letters, "u:", "v")
	letters = strings.ReplaceAll(letters, "ü", "v")

	pos := strings.IndexAny(letters, "aeiouv")
	if pos == -1 {
		return letters
	}

	forms := toneForms[letters[pos]]
	return letters[:pos] + forms[tone] + letters[pos+1:]
}
