package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/docmd"
	"github.com/docbridge/docbridge/internal/gdocs"
	"github.com/docbridge/docbridge/internal/history"
)

var pushIndex int64

var pushCmd = &cobra.Command{
	Use:   "push <document-id> [file]",
	Short: "Append Markdown to a Google Doc",
	Long: `Append Markdown to a Google Doc, reading from a file or stdin.

Examples:
  docbridge push 1aBcD... notes.md
  cat notes.md | docbridge push 1aBcD...
  docbridge push 1aBcD... notes.md --at 1    # insert at the start instead`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPush,
}

func init() {
	pushCmd.Flags().Int64Var(&pushIndex, "at", 0, "Insert at this UTF-16 index instead of appending")
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	md, err := readMarkdownArg(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}

	index := pushIndex
	if index < 1 {
		doc, err := client.Open(ctx, args[0])
		if err != nil {
			return err
		}
		index = gdocs.EndIndex(doc)
	}

	reqs, end := docmd.Compile(md, index)
	if len(reqs) == 0 {
		return fmt.Errorf("no content to push")
	}
	if err := client.Apply(ctx, args[0], reqs); err != nil {
		return err
	}

	logger := newLogger()
	logger.Info("applied batch", "doc", args[0], "requests", len(reqs), "end", end)

	if cfg.History.Enabled {
		if store, err := history.Open(cfg.History.Path); err == nil {
			defer store.Close()
			if err := store.Record(ctx, &history.Entry{
				DocumentID: args[0],
				Tool:       "push",
				Requests:   len(reqs),
				EndIndex:   end,
			}); err != nil {
				logger.Warn("history record failed", "error", err)
			}
		} else {
			logger.Warn("history unavailable", "error", err)
		}
	}
	return nil
}

func readMarkdownArg(args []string) (string, error) {
	if len(args) > 1 {
		b, err := os.ReadFile(args[1])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[1], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}
