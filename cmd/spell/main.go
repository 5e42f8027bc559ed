// Command spell builds frequency models and checks Devanagari text against
// them from the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"hindispell/internal/config"
	"hindispell/internal/corrector"
	"hindispell/internal/modelstore"
	"hindispell/pkg/options"
)

const defaultModel = "hindi_word_model.json"

type RootOptions struct {
	LogLevel  string
	LogFormat string
}

func (o *RootOptions) Logger() *slog.Logger {
	return config.NewLogger(config.LogConfig{Level: o.LogLevel, Format: o.LogFormat}, os.Stderr)
}

// loadCorrector opens the model at uri and starts a correction session on it.
func loadCorrector(ctx context.Context, uri string, logger *slog.Logger, opts ...options.Options) (*corrector.SpellCorrector, error) {
	store, err := modelstore.Open(uri, logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	idx, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("model loaded", "uri", uri, "words", idx.Len())
	return corrector.NewSpellCorrector(idx, opts...)
}

func NewRootCmd() *cobra.Command {
	o := &RootOptions{}
	cmd := &cobra.Command{
		Use:           "spell",
		Short:         "Statistical spell correction for Devanagari text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(NewBuildCmd(&BuildOptions{Root: o}))
	cmd.AddCommand(NewCheckCmd(&CheckOptions{Root: o}))
	cmd.AddCommand(NewEvalCmd(&EvalOptions{Root: o}))
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "spell: %v\n", err)
		os.Exit(1)
	}
}
