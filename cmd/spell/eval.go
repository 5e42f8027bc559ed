package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hindispell/internal/corrector"
	"hindispell/internal/edits"
	"hindispell/internal/tokenizer"
	"hindispell/pkg/options"
)

type EvalOptions struct {
	Root            *RootOptions
	Model           string
	TestSets        []string
	MaxEditDistance int
	Verbose         bool
}

func NewEvalCmd(o *EvalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure correction accuracy on 'right: wrong1 wrong2' test sets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := loadCorrector(cmd.Context(), o.Model, o.Root.Logger(),
				options.WithMaxEditDistance(o.MaxEditDistance))
			if err != nil {
				return err
			}
			for _, path := range o.TestSets {
				pairs, err := readTestSet(path)
				if err != nil {
					return err
				}
				rep, err := evaluate(sc, pairs, o.verboseWriter(cmd.ErrOrStderr()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, rep)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&o.Model, "model", "m", defaultModel, "Model location (path, redis://, badger://)")
	cmd.Flags().StringArrayVarP(&o.TestSets, "test-set", "t", nil, "Test set file (can be specified multiple times)")
	cmd.Flags().IntVarP(&o.MaxEditDistance, "max-distance", "d", options.MaxEditDistance, "Largest edit distance searched (0-2)")
	cmd.Flags().BoolVarP(&o.Verbose, "verbose", "v", false, "Print every wrong correction")
	cmd.MarkFlagRequired("test-set")
	return cmd
}

func (o *EvalOptions) verboseWriter(w io.Writer) io.Writer {
	if o.Verbose {
		return w
	}
	return nil
}

// testPair is one misspelling and the word it should become.
type testPair struct {
	Right string
	Wrong string
}

func readTestSet(path string) ([]testPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pairs, err := parseTestSet(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

// parseTestSet reads lines of the form "right: wrong1 wrong2 ...". Blank
// lines and lines starting with # are skipped.
func parseTestSet(r io.Reader) ([]testPair, error) {
	var pairs []testPair
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		right, wrongs, ok := strings.Cut(text, ":")
		right = strings.TrimSpace(right)
		if !ok || right == "" {
			return nil, fmt.Errorf("line %d: expected 'right: wrong1 wrong2'", line)
		}
		for _, wrong := range strings.Fields(wrongs) {
			pairs = append(pairs, testPair{
				Right: tokenizer.Canonical(right),
				Wrong: tokenizer.Canonical(wrong),
			})
		}
	}
	return pairs, sc.Err()
}

type evalReport struct {
	Total   int
	Good    int
	Unknown int
	// Edits sums the edit distance between each misspelling and the
	// correction chosen for it.
	Edits   int
	Elapsed time.Duration
}

func (r evalReport) Accuracy() float64 { return ratio(r.Good, r.Total) }

func (r evalReport) UnknownRate() float64 { return ratio(r.Unknown, r.Total) }

func (r evalReport) MeanEdits() float64 { return ratio(r.Edits, r.Total) }

func (r evalReport) WordsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Total) / r.Elapsed.Seconds()
}

func (r evalReport) String() string {
	return fmt.Sprintf("%.0f%% of %d correct (%.0f%% unknown) at %.0f words per second, %.2f edits per correction",
		100*r.Accuracy(), r.Total, 100*r.UnknownRate(), r.WordsPerSecond(), r.MeanEdits())
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// evaluate corrects every misspelling in pairs. When verbose is non-nil each
// miss is written to it.
func evaluate(sc *corrector.SpellCorrector, pairs []testPair, verbose io.Writer) (evalReport, error) {
	var rep evalReport
	idx := sc.Index()
	start := time.Now()
	for _, p := range pairs {
		cands, err := sc.Rank(p.Wrong)
		if err != nil {
			return rep, err
		}
		got := cands.Best().Term
		rep.Total++
		rep.Edits += edits.Distance(p.Wrong, got)
		if got == p.Right {
			rep.Good++
			continue
		}
		known := idx.Has(p.Right)
		if !known {
			rep.Unknown++
		}
		if verbose != nil {
			fmt.Fprintf(verbose, "correction(%s) => %s (%d); expected %s (%d) known=%t\n",
				p.Wrong, got, cands.Best().Frequency, p.Right, frequencyOf(sc, p.Right), known)
		}
	}
	rep.Elapsed = time.Since(start)
	return rep, nil
}

func frequencyOf(sc *corrector.SpellCorrector, w string) int64 {
	n, _ := sc.Index().Frequency(w)
	return n
}
