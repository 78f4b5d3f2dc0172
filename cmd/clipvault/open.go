package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sathamlet92/clipboard/internal/model"
	"github.com/Sathamlet92/clipboard/internal/paste"
)

func init() {
	rootCommand.AddCommand(openCommand)
}

var openCommand = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a URL-classified item with the platform URL opener",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return err
		}
		it, ok, err := current.store.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("clipvault: no item with id %d", id)
		}
		if it.Type != model.URL {
			return fmt.Errorf("clipvault: item %d is not a URL", id)
		}
		return paste.OpenURL(string(it.Content))
	},
}
