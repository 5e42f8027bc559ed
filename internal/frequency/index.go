// Package frequency holds the word-frequency model: a read-only Index used
// during correction, the Counter used to build one from a corpus, and the
// JSON and text encodings of the model.
package frequency

import (
	"errors"
	"fmt"
	"sort"

	"hindispell/internal/tokenizer"
)

// ErrIndexUnavailable means no usable frequency index could be produced:
// the artifact is missing, corrupt or empty.
var ErrIndexUnavailable = errors.New("frequency index unavailable")

// Index maps canonical words to corpus counts. It is never modified after
// construction and is safe for concurrent reads.
type Index struct {
	counts map[string]int64
	total  int64
}

// NewIndex copies counts into a new Index. Keys are canonicalized and counts
// of keys that collide are summed. A negative count or an empty result is an
// ErrIndexUnavailable.
func NewIndex(counts map[string]int64) (*Index, error) {
	idx := &Index{counts: make(map[string]int64, len(counts))}
	for w, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative count %d for %q", ErrIndexUnavailable, c, w)
		}
		key := tokenizer.Canonical(w)
		if key == "" {
			continue
		}
		idx.counts[key] += c
		idx.total += c
	}
	if len(idx.counts) == 0 {
		return nil, fmt.Errorf("%w: no words", ErrIndexUnavailable)
	}
	return idx, nil
}

// Frequency returns the count stored for w and whether w is known.
func (idx *Index) Frequency(w string) (int64, bool) {
	c, ok := idx.counts[w]
	return c, ok
}

func (idx *Index) Has(w string) bool {
	_, ok := idx.counts[w]
	return ok
}

func (idx *Index) Len() int { return len(idx.counts) }

// Total is the sum of all counts.
func (idx *Index) Total() int64 { return idx.total }

// Probability returns count(w)/Total(), or 0 for unknown words.
func (idx *Index) Probability(w string) float64 {
	if idx.total == 0 {
		return 0
	}
	return float64(idx.counts[w]) / float64(idx.total)
}

// Words returns every known word in ascending order.
func (idx *Index) Words() []string {
	out := make([]string, 0, len(idx.counts))
	for w := range idx.counts {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Counts returns a copy of the underlying map.
func (idx *Index) Counts() map[string]int64 {
	out := make(map[string]int64, len(idx.counts))
	for w, c := range idx.counts {
		out[w] = c
	}
	return out
}

// WithWords returns a new Index holding everything in idx plus words, each
// set to freq. idx itself is left untouched. Words that do not
// canonicalize to a script word are skipped.
func (idx *Index) WithWords(words []string, freq int64) *Index {
	out := &Index{counts: idx.Counts(), total: idx.total}
	for _, w := range words {
		key := tokenizer.Canonical(w)
		if !tokenizer.IsWord(key) {
			continue
		}
		out.total += freq - out.counts[key]
		out.counts[key] = freq
	}
	return out
}
