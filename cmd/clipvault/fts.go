package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCommand.AddCommand(ftsRebuildCommand)
}

var ftsRebuildCommand = &cobra.Command{
	Use:   "fts-rebuild",
	Short: "Rebuild the FTS index from clipboard_items (recovers from a partial sync failure)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := current.store.RebuildFTS(); err != nil {
			return err
		}
		slog.Info("fts index rebuilt")
		return nil
	},
}
