package corrector

import (
	"fmt"
	"strings"

	"hindispell/internal/edits"
	"hindispell/internal/frequency"
	"hindispell/internal/tokenizer"
	"hindispell/pkg/options"
)

// SpellCorrector is a correction session over one frequency index. The index
// is only read, so a SpellCorrector is safe for concurrent use.
type SpellCorrector struct {
	config options.CorrectorOptions
	index  *frequency.Index
	edits  *edits.Generator
}

// NewSpellCorrector starts a session over idx. It fails with
// frequency.ErrIndexUnavailable when idx is nil or empty.
func NewSpellCorrector(idx *frequency.Index, opts ...options.Options) (*SpellCorrector, error) {
	if idx == nil || idx.Len() == 0 {
		return nil, fmt.Errorf("new spell corrector: %w", frequency.ErrIndexUnavailable)
	}
	cfg := options.Resolve(opts...)
	return &SpellCorrector{
		config: cfg,
		index:  idx,
		edits:  edits.NewGenerator(cfg.Alphabet),
	}, nil
}

func (sc *SpellCorrector) ready() error {
	if sc == nil || sc.index == nil {
		return frequency.ErrIndexUnavailable
	}
	return nil
}

func (sc *SpellCorrector) Index() *frequency.Index { return sc.index }

func (sc *SpellCorrector) Options() options.CorrectorOptions { return sc.config }

// CorrectText replaces every word of text that is missing from the index
// with its best candidate. Everything between words is kept byte for byte.
// Each distinct unknown word is reported once, in order of first
// appearance, even when no correction was found for it.
func (sc *SpellCorrector) CorrectText(text string) (CorrectionResult, error) {
	if err := sc.ready(); err != nil {
		return CorrectionResult{}, err
	}

	segs := tokenizer.Tokenize(text)
	out := make([]string, len(segs))
	res := CorrectionResult{
		Original:        text,
		OriginalTokens:  []string{},
		CorrectedTokens: []string{},
		Misspelled:      []string{},
		Candidates:      make(map[string]CandidateSet),
	}

	for i, seg := range segs {
		out[i] = seg.Text
		if !seg.Word {
			continue
		}
		res.OriginalTokens = append(res.OriginalTokens, seg.Text)

		key := tokenizer.Canonical(seg.Text)
		if sc.index.Has(key) {
			res.CorrectedTokens = append(res.CorrectedTokens, seg.Text)
			continue
		}

		cands, seen := res.Candidates[seg.Text]
		if !seen {
			cands = sc.rank(key)
			res.Candidates[seg.Text] = cands
			res.Misspelled = append(res.Misspelled, seg.Text)
		}
		best := cands.Best().Term
		if best == key {
			best = seg.Text
		}
		out[i] = best
		res.CorrectedTokens = append(res.CorrectedTokens, best)
	}

	res.Corrected = strings.Join(out, "")
	return res, nil
}
