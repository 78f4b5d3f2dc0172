package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	searchCommand.Flags().IntP("limit", "n", 50, "maximum number of results")
	rootCommand.AddCommand(searchCommand)
}

var searchCommand = &cobra.Command{
	Use:   "search [query]",
	Short: "Search clipboard history (hybrid exact/FTS/semantic)",
	Example: `
  # Most recent items
  clipvault search

  # Hybrid search, query expansion included
  clipvault search csharp

  # Pipe ids into delete
  clipvault search --limit 10000 "BEGIN KEY" | awk '{ print $1 }' | xargs clipvault delete
  `,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var query string
		if len(args) == 1 {
			query = args[0]
		}
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		items, err := current.engine.Search(cmd.Context(), query, limit)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("%d\t%s\t%s\n", it.ID, it.Type, preview(it.TextContent(), it.OCRText))
		}
		return nil
	},
}

// preview returns a single-line, length-bounded summary for listing, the
// text content when present and otherwise the OCR text.
func preview(text, ocrText string) string {
	if text == "" {
		text = ocrText
	}
	out := strings.Join(strings.Fields(text), " ")
	if len(out) > 100 {
		out = out[:100]
	}
	return out
}
