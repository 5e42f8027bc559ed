// Package alphabet holds the character sets used for tokenization and for
// generating spelling edits over Devanagari text.
package alphabet

// Alphabet is an ordered set of runes. The zero value is empty.
// An Alphabet is never modified after construction.
type Alphabet struct {
	runes []rune
	set   map[rune]struct{}
}

// Devanagari is the default edit alphabet: independent vowels, consonants,
// dependent vowel signs and the combining marks used in Hindi spelling.
var Devanagari = New(
	"अआइईउऊऋएऐओऔ" +
		"कखगघङचछजझञटठडढणतथदधनपफबभमयरलवशषसहळ" +
		"ािीुूृेैोौ" +
		"ँंः़्",
)

// New builds an Alphabet from chars, dropping repeated runes and keeping the
// order of first appearance.
func New(chars string) Alphabet {
	a := Alphabet{set: make(map[rune]struct{})}
	for _, r := range chars {
		if _, ok := a.set[r]; ok {
			continue
		}
		a.set[r] = struct{}{}
		a.runes = append(a.runes, r)
	}
	return a
}

// Runes returns a copy of the alphabet in order.
func (a Alphabet) Runes() []rune {
	out := make([]rune, len(a.runes))
	copy(out, a.runes)
	return out
}

// Each calls fn for every rune in order.
func (a Alphabet) Each(fn func(r rune)) {
	for _, r := range a.runes {
		fn(r)
	}
}

func (a Alphabet) Contains(r rune) bool {
	_, ok := a.set[r]
	return ok
}

func (a Alphabet) Len() int { return len(a.runes) }

// Devanagari block boundaries and the non-letter code points inside it.
const (
	blockFirst   = 'ऀ'
	blockLast    = 'ॿ'
	danda        = '।'
	doubleDanda  = '॥'
	digitZero    = '०'
	digitNine    = '९'
	abbreviation = '॰'
)

// IsScriptRune reports whether r can be part of a word token: any code point
// of the Devanagari block except punctuation (danda, double danda,
// abbreviation sign) and digits.
func IsScriptRune(r rune) bool {
	if r < blockFirst || r > blockLast {
		return false
	}
	switch {
	case r == danda, r == doubleDanda, r == abbreviation:
		return false
	case r >= digitZero && r <= digitNine:
		return false
	}
	return true
}
