package main

import (
	"log/slog"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func init() {
	rootCommand.AddCommand(deleteCommand)
}

var deleteCommand = &cobra.Command{
	Use:   "delete ...ids",
	Short: "Remove items from clipboard history",
	Example: `
  # Delete a single item with ID 42
  clipvault delete 42

  # Delete multiple items with IDs 1, 5, and 10
  clipvault delete 1 5 10

  # Delete a range of items (using shell expansion)
  clipvault delete {20..25}
  `,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := cast.ToUintSliceE(args)
		if err != nil {
			return err
		}
		var deleted int
		for _, id := range ids {
			ok, err := current.store.Delete(cmd.Context(), uint64(id))
			if err != nil {
				return err
			}
			if ok {
				deleted++
			}
		}
		slog.Info("clipboard history deleted", "deleted-items", deleted)
		return nil
	},
}
