package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/extraction"
)

func newSummarizeCommand() *cobra.Command {
	var wordCount int
	command := &cobra.Command{
		Use:   "summarize <term...>",
		Short: "Summarize the Wikipedia article of a term, using the cache when possible",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if !cmd.Flags().Changed("word-count") {
				wordCount = cfg.Summaries.DefaultWordCount
			}
			if wordCount > cfg.Summaries.MaxWordCount {
				return fmt.Errorf("word count must be %d or less", cfg.Summaries.MaxWordCount)
			}

			pipeline, client := extraction.NewPipelineFromConfig(cfg, article.NewDBStore(db))
			defer func() { _ = client.Close() }()
			return summarize(cmd.Context(), pipeline, newPrinter(cmd.OutOrStdout()), strings.Join(args, " "), wordCount)
		},
	}
	command.Flags().IntVarP(&wordCount, "word-count", "n", 0, "maximum number of words of the summary")
	return command
}

type extractor interface {
	Extract(ctx context.Context, rawWord string, wordCount int) (extraction.Result, error)
}

func summarize(ctx context.Context, e extractor, p *printer, word string, wordCount int) error {
	result, err := e.Extract(ctx, word, wordCount)
	if err != nil {
		if extraction.KindOf(err).NotFound() {
			p.notFound(result)
			return nil
		}
		return fmt.Errorf("pipeline.Extract > %w", err)
	}
	p.result(result)
	return nil
}
