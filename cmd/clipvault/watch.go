package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sathamlet92/clipboard/internal/enrich"
	"github.com/Sathamlet92/clipboard/internal/transport"
)

func init() {
	rootCommand.AddCommand(watchCommand)
}

var watchCommand = &cobra.Command{
	Use:   "watch",
	Short: "Consume the daemon's clipboard event stream and enrich/store each item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		slog.Info("clipvault watch starting", "version", version)
		client := daemonClient()
		return client.Run(cmd.Context(), func(ev transport.ClipboardEvent) {
			id, ok, err := current.pipeline.Handle(cmd.Context(), enrich.Event{
				Data:        ev.Data,
				SourceApp:   ev.SourceApp,
				WindowTitle: ev.WindowTitle,
				TimestampMS: ev.Timestamp * 1000,
				MimeType:    ev.MimeType,
			})
			if err != nil {
				slog.Error("failed to handle clipboard event", "error", err)
				return
			}
			if ok {
				slog.Debug("stored clipboard item", "id", id, "mime", ev.MimeType)
			}
		})
	},
}
