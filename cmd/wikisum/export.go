package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/export"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/term"
)

var _ pflag.Value = (*export.Format)(nil)

func newExportCommand() *cobra.Command {
	format := export.FormatYAML
	var output, word string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export cached summaries as a YAML or PDF report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			slug := term.Slug(term.Normalize(word))
			listings, err := article.NewDBStore(db).ListSummaries(cmd.Context(), slug)
			if err != nil {
				return err
			}

			now := time.Now()
			path := exportPath(cfg.Export.Directory, output, format, now)
			written, err := export.Write(format, path, listings, now)
			if err != nil {
				return fmt.Errorf("export.Write > %w", err)
			}
			newPrinter(cmd.OutOrStdout()).success("Exported %d summaries to %s", len(listings), written)
			return nil
		},
	}
	command.Flags().Var(&format, "format", "report format: yaml or pdf")
	command.Flags().StringVarP(&output, "output", "o", "", "output file path (default: a timestamped file in export.directory)")
	command.Flags().StringVar(&word, "word", "", "only export the summaries of this term")
	return command
}

func exportPath(directory, output string, format export.Format, now time.Time) string {
	if output != "" {
		return output
	}
	return filepath.Join(directory, "summaries-"+now.Format("20060102-150405")+format.Extension())
}
