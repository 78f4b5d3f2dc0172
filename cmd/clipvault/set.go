package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sathamlet92/clipboard/internal/paste"
)

func init() {
	rootCommand.AddCommand(setCommand)
}

var setCommand = &cobra.Command{
	Use:   "set <id>",
	Short: "Write a past item back onto the system clipboard",
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
		return paste.ToClipboard(it)
	},
}
