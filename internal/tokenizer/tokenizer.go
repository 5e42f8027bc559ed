// Package tokenizer splits text into Devanagari word runs and the separators
// between them, and defines the canonical form used for frequency lookups.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"hindispell/internal/alphabet"
)

// The word class mirrors alphabet.IsScriptRune: the Devanagari block without
// danda, double danda, digits and the abbreviation sign.
const wordClass = `\x{0900}-\x{0963}\x{0971}-\x{097F}`

var segmentRe = regexp.MustCompile(`[` + wordClass + `]+|[^` + wordClass + `]+`)

// Segment is a maximal run of either word runes or separator runes.
type Segment struct {
	Text string
	Word bool
}

// Tokenize splits text into alternating word and separator segments.
// Joining the Text of all segments yields text unchanged.
func Tokenize(text string) []Segment {
	if text == "" {
		return nil
	}
	parts := segmentRe.FindAllString(text, -1)
	segs := make([]Segment, len(parts))
	for i, p := range parts {
		r, _ := utf8.DecodeRuneInString(p)
		segs[i] = Segment{Text: p, Word: alphabet.IsScriptRune(r)}
	}
	return segs
}

// Words returns the canonical form of every word token in text, in order.
func Words(text string) []string {
	var out []string
	for _, s := range Tokenize(text) {
		if s.Word {
			out = append(out, Canonical(s.Text))
		}
	}
	return out
}

// Canonical returns the lookup key for a word: NFC-normalized and lowercased.
// Lowercasing is a no-op for Devanagari but keeps mixed input consistent with
// models built from lowercased corpora.
func Canonical(word string) string {
	return strings.ToLower(norm.NFC.String(word))
}

// IsWord reports whether s is non-empty and made only of script runes.
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !alphabet.IsScriptRune(r) {
			return false
		}
	}
	return true
}
