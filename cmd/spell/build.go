package main

import (
	"bufio"
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hindispell/internal/frequency"
	"hindispell/internal/modelstore"
	"hindispell/internal/wikidump"
)

// progressEvery is how many pages pass between progress lines.
const progressEvery = 1000

type BuildOptions struct {
	Root  *RootOptions
	Input string
	Out   string
	Plain bool
}

func NewBuildCmd(o *BuildOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a word frequency model from a Wikipedia dump or plain text",
		Example: "  spell build -i hiwiki-latest-pages-articles.xml.bz2 -o hindi_word_model.json\n" +
			"  spell build -i corpus.txt --plain -o redis://localhost:6379/0?key=hindi_word_model",
		RunE: func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.Context()) },
	}
	cmd.Flags().StringVarP(&o.Input, "input", "i", "", "Dump or corpus file (.bz2 is decompressed, - reads stdin)")
	cmd.Flags().StringVarP(&o.Out, "out", "o", defaultModel, "Model destination (path, redis://, badger://)")
	cmd.Flags().BoolVar(&o.Plain, "plain", false, "Treat input as plain text instead of MediaWiki XML")
	cmd.MarkFlagRequired("input")
	return cmd
}

func (o *BuildOptions) Run(ctx context.Context) error {
	logger := o.Root.Logger()
	start := time.Now()

	in, err := openInput(o.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	var r io.Reader = in
	if strings.HasSuffix(o.Input, ".bz2") {
		r = bzip2.NewReader(in)
	}

	counter := frequency.Counter{}
	if o.Plain {
		err = countPlain(r, counter)
	} else {
		var pages int
		pages, err = countDump(ctx, r, counter, logger)
		logger.Info("dump parsed", "pages", pages)
	}
	if err != nil {
		return err
	}
	if counter.Len() == 0 {
		return fmt.Errorf("no words extracted from %s", o.Input)
	}
	logger.Info("model created", "words", counter.Len(), "took", time.Since(start))

	store, err := modelstore.Open(o.Out, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Save(ctx, counter); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	logger.Info("model saved", "out", o.Out)
	return nil
}

func countDump(ctx context.Context, r io.Reader, counter frequency.Counter, logger *slog.Logger) (int, error) {
	seen := 0
	return wikidump.Walk(ctx, r, func(p wikidump.Page) error {
		counter.AddText(p.Text)
		if seen++; seen%progressEvery == 0 {
			logger.Info("processing", "pages", seen, "words", counter.Len())
		}
		return nil
	})
}

func countPlain(r io.Reader, counter frequency.Counter) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		counter.AddText(sc.Text())
	}
	return sc.Err()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("input %s not found", path)
	}
	return f, err
}
