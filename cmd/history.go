package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/config"
	"github.com/docbridge/docbridge/internal/history"
)

var historyDoc string
var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show batches applied to remote documents",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyDoc, "doc", "", "Only show batches for this document id")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), historyDoc, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-12s %s  %d requests, end %d\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Tool, e.DocumentID, e.Requests, e.EndIndex)
	}
	return nil
}
