package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/docmd"
)

var createFrom string

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new Google Doc",
	Long: `Create a new Google Doc, optionally seeded from a Markdown file.

Examples:
  docbridge create "Meeting notes"
  docbridge create "Design doc" --from design.md`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createFrom, "from", "", "Markdown file with initial content")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, _, err := newClient(ctx)
	if err != nil {
		return err
	}

	id, err := client.Create(ctx, args[0])
	if err != nil {
		return err
	}

	if createFrom != "" {
		b, err := os.ReadFile(createFrom)
		if err != nil {
			return fmt.Errorf("read %s: %w", createFrom, err)
		}
		reqs, _ := docmd.Compile(string(b), 1)
		if len(reqs) > 0 {
			if err := client.Apply(ctx, id, reqs); err != nil {
				return fmt.Errorf("document %s created but initial content failed: %w", id, err)
			}
		}
	}

	fmt.Println(id)
	return nil
}
