// Package edits generates the words reachable from a word by one or two
// atomic edits (deletion, adjacent transposition, substitution, insertion)
// over a fixed alphabet.
package edits

import "hindispell/internal/alphabet"

// Generator produces edit neighbourhoods over one alphabet. It holds no
// mutable state and is safe for concurrent use.
type Generator struct {
	alphabet alphabet.Alphabet
}

func NewGenerator(a alphabet.Alphabet) *Generator {
	return &Generator{alphabet: a}
}

// Walk1 calls fn for every word one edit away from word. The same word may
// be passed more than once; word itself never is. Runes outside the alphabet
// are kept as they are but never inserted or substituted in.
func (g *Generator) Walk1(word string, fn func(string)) {
	rs := []rune(word)
	n := len(rs)
	buf := make([]rune, 0, n+1)

	for i := 0; i <= n; i++ {
		left, right := rs[:i], rs[i:]

		if len(right) > 0 {
			buf = append(append(buf[:0], left...), right[1:]...)
			fn(string(buf))
		}

		// Swapping two equal runes gives word back.
		if len(right) > 1 && right[0] != right[1] {
			buf = append(append(buf[:0], left...), right[1], right[0])
			buf = append(buf, right[2:]...)
			fn(string(buf))
		}

		if len(right) > 0 {
			g.alphabet.Each(func(c rune) {
				if c == right[0] {
					return
				}
				buf = append(append(buf[:0], left...), c)
				buf = append(buf, right[1:]...)
				fn(string(buf))
			})
		}

		g.alphabet.Each(func(c rune) {
			buf = append(append(buf[:0], left...), c)
			buf = append(buf, right...)
			fn(string(buf))
		})
	}
}

// Distance1 returns every word one edit away from word. An empty word
// yields only the single-rune insertions.
func (g *Generator) Distance1(word string) Set {
	out := make(Set)
	g.Walk1(word, out.Add)
	return out
}

// Distance2 returns the union of Distance1(e) over every e in
// Distance1(word). Each intermediate word is expanded once.
//
// The result grows roughly with |alphabet|²·|word|²; prefer KnownWithin2
// when only members accepted by a predicate are needed.
func (g *Generator) Distance2(word string) Set {
	out := make(Set)
	for e1 := range g.Distance1(word) {
		g.Walk1(e1, out.Add)
	}
	return out
}

// KnownWithin2 returns the members of Distance2(word) for which accept
// reports true, without materializing the full neighbourhood.
func (g *Generator) KnownWithin2(word string, accept func(string) bool) Set {
	out := make(Set)
	for e1 := range g.Distance1(word) {
		g.Walk1(e1, func(e2 string) {
			if accept(e2) {
				out.Add(e2)
			}
		})
	}
	return out
}
