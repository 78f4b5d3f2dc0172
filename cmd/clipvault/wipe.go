package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	rootCommand.AddCommand(wipeCommand)
}

var wipeCommand = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all clipboard history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := current.store.DeleteAll(cmd.Context()); err != nil {
			return err
		}
		slog.Info("clipboard history wiped")
		return nil
	},
}
