package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [query]",
	Short: "List Google Docs, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	files, err := client.List(ctx, query, cfg.Drive.PageSize)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No documents found.")
		return nil
	}
	for _, f := range files {
		fmt.Printf("%s\t%s\t%s\n", f.ID, f.Modified, f.Name)
	}
	return nil
}
