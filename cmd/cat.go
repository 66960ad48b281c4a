package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/docmd"
)

var catCmd = &cobra.Command{
	Use:   "cat <document-id>",
	Short: "Print a Google Doc as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, args []string) error {
	client, _, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	doc, err := client.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(docmd.FromDocument(doc))
	return nil
}
