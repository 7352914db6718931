package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/database"
	"github.com/sekirofabio/desafio-tecnico-itau/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := database.Migrate(cmd.Context(), db, schemas.Migrations); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			newPrinter(cmd.OutOrStdout()).success("Database schema is up to date")
			return nil
		},
	}
}
