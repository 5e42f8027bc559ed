package corrector

import (
	"sort"

	"hindispell/internal/edits"
	"hindispell/internal/tokenizer"
)

// tier produces the known candidates at one edit distance, or nothing.
type tier struct {
	distance int
	known    func(word string) edits.Set
}

// tiers is the ranking policy: the first tier yielding any known word wins.
// Tiers past the configured maximum distance are never consulted.
func (sc *SpellCorrector) tiers() []tier {
	return []tier{
		{distance: 0, known: sc.knownExact},
		{distance: 1, known: sc.knownDistance1},
		{distance: 2, known: sc.knownDistance2},
	}
}

func (sc *SpellCorrector) knownExact(word string) edits.Set {
	if sc.index.Has(word) {
		return edits.NewSet(word)
	}
	return nil
}

func (sc *SpellCorrector) knownDistance1(word string) edits.Set {
	out := make(edits.Set)
	sc.edits.Walk1(word, func(e string) {
		if sc.index.Has(e) {
			out.Add(e)
		}
	})
	return out
}

func (sc *SpellCorrector) knownDistance2(word string) edits.Set {
	return sc.edits.KnownWithin2(word, sc.index.Has)
}

// Rank returns the candidates for word, best first. A known word ranks as
// itself alone. Otherwise the known words at the smallest edit distance that
// has any are returned; when there are none, word itself comes back with
// frequency 0. Words containing runes outside the script are not searched.
func (sc *SpellCorrector) Rank(word string) (CandidateSet, error) {
	if err := sc.ready(); err != nil {
		return nil, err
	}
	return sc.rank(word), nil
}

func (sc *SpellCorrector) rank(word string) CandidateSet {
	if !tokenizer.IsWord(word) {
		return sc.unknown(word)
	}
	for _, t := range sc.tiers() {
		if t.distance > sc.config.MaxEditDistance {
			break
		}
		if found := t.known(word); found.Len() > 0 {
			return sc.ordered(found, t.distance)
		}
	}
	return sc.unknown(word)
}

func (sc *SpellCorrector) ordered(words edits.Set, distance int) CandidateSet {
	out := make(CandidateSet, 0, words.Len())
	for w := range words {
		f, _ := sc.index.Frequency(w)
		out = append(out, Candidate{
			Term:        w,
			Frequency:   f,
			Distance:    distance,
			Probability: sc.index.Probability(w),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency == out[j].Frequency {
			return out[i].Term < out[j].Term
		}
		return out[i].Frequency > out[j].Frequency
	})
	return out
}

func (sc *SpellCorrector) unknown(word string) CandidateSet {
	return CandidateSet{{Term: word}}
}
