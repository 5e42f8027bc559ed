package options

import "hindispell/internal/alphabet"

// MaxEditDistance is the largest edit distance the corrector searches.
const MaxEditDistance = 2

var DefaultOptions = CorrectorOptions{
	MaxEditDistance: MaxEditDistance,
	TopKSuggestions: 5,
	Alphabet:        alphabet.Devanagari,
}

type CorrectorOptions struct {
	MaxEditDistance int               // 0 disables correction, 1 or 2 enables the matching tiers
	TopKSuggestions int               // candidates shown per misspelled word by front ends
	Alphabet        alphabet.Alphabet // runes used for insertions and substitutions
}

type Options interface {
	Apply(options *CorrectorOptions)
}

type FuncConfig struct {
	ops func(options *CorrectorOptions)
}

func (w FuncConfig) Apply(conf *CorrectorOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CorrectorOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Resolve applies opts on top of DefaultOptions.
func Resolve(opts ...Options) CorrectorOptions {
	conf := DefaultOptions
	for _, o := range opts {
		if o != nil {
			o.Apply(&conf)
		}
	}
	return conf
}

// WithMaxEditDistance clamps d to 0..MaxEditDistance.
func WithMaxEditDistance(d int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		switch {
		case d < 0:
			d = 0
		case d > MaxEditDistance:
			d = MaxEditDistance
		}
		options.MaxEditDistance = d
	})
}

func WithTopKSuggestions(k int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		if k > 0 {
			options.TopKSuggestions = k
		}
	})
}

func WithAlphabet(a alphabet.Alphabet) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		if a.Len() > 0 {
			options.Alphabet = a
		}
	})
}
