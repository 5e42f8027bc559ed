package frequency

import "hindispell/internal/tokenizer"

// Counter accumulates word counts while a model is being built.
type Counter map[string]int64

// AddText counts every word token of text.
func (c Counter) AddText(text string) {
	for _, w := range tokenizer.Words(text) {
		c[w]++
	}
}

func (c Counter) Add(w string, n int64) { c[w] += n }

func (c Counter) Len() int { return len(c) }

// Index freezes the counts into a read-only Index.
func (c Counter) Index() (*Index, error) { return NewIndex(c) }
