package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
	"github.com/sekirofabio/desafio-tecnico-itau/internal/term"
)

func newSummariesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summaries [term...]",
		Short: "List cached summaries, with their text when a term is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			slug := term.Slug(term.Normalize(strings.Join(args, " ")))
			listings, err := article.NewDBStore(db).ListSummaries(cmd.Context(), slug)
			if err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).listings(listings, slug != "")
			return nil
		},
	}
}
