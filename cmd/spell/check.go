package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hindispell/internal/corrector"
	"hindispell/pkg/options"
)

type CheckOptions struct {
	Root            *RootOptions
	Model           string
	MaxEditDistance int
	TopK            int
	JSON            bool
}

func NewCheckCmd(o *CheckOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [text...]",
		Short:   "Correct text given as arguments or on stdin",
		Example: "  spell check 'भारत् एक महाना देष है।'\n  echo 'यह एक महत्वपुर्ण विषय्य है।' | spell check",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := checkInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			sc, err := loadCorrector(cmd.Context(), o.Model, o.Root.Logger(),
				options.WithMaxEditDistance(o.MaxEditDistance),
				options.WithTopKSuggestions(o.TopK))
			if err != nil {
				return err
			}
			res, err := sc.CorrectText(text)
			if err != nil {
				return err
			}
			return o.Print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&o.Model, "model", "m", defaultModel, "Model location (path, redis://, badger://)")
	cmd.Flags().IntVarP(&o.MaxEditDistance, "max-distance", "d", options.MaxEditDistance, "Largest edit distance searched (0-2)")
	cmd.Flags().IntVarP(&o.TopK, "top", "k", 5, "Suggestions shown per misspelled word")
	cmd.Flags().BoolVar(&o.JSON, "json", false, "Print the full correction result as JSON")
	return cmd
}

func checkInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// Print writes res in the layout of the interactive demo: the input, the
// corrected text and the top suggestions for every misspelled word.
func (o *CheckOptions) Print(w io.Writer, res corrector.CorrectionResult) error {
	if o.JSON {
		return writeJSON(w, res)
	}
	fmt.Fprintf(w, "Original:  %s\n", strings.TrimRight(res.Original, "\n"))
	fmt.Fprintf(w, "Corrected: %s\n", strings.TrimRight(res.Corrected, "\n"))
	if len(res.Misspelled) == 0 {
		fmt.Fprintln(w, "No misspelled words found.")
		return nil
	}
	fmt.Fprintln(w, "Suggestions:")
	for _, tok := range res.Misspelled {
		cands := res.Candidates[tok]
		if o.TopK > 0 && len(cands) > o.TopK {
			cands = cands[:o.TopK]
		}
		parts := make([]string, 0, len(cands))
		for _, c := range cands {
			parts = append(parts, fmt.Sprintf("%s (%d)", c.Term, c.Frequency))
		}
		fmt.Fprintf(w, "  %s: %s\n", tok, strings.Join(parts, ", "))
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
