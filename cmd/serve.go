package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/history"
	"github.com/docbridge/docbridge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Run docbridge as an MCP server over stdio.

Tools exposed:
  docs_read     read a document as Markdown
  docs_append   append Markdown to a document
  docs_insert   insert Markdown at an index
  docs_create   create a document, optionally with content
  docs_list     list documents via Drive

Register with an MCP client, e.g.:
  { "docbridge": { "command": "docbridge", "args": ["serve"] } }`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger()

	client, cfg, err := newClient(ctx)
	if err != nil {
		return err
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history disabled", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	return server.New(client, store, logger, cfg.Drive.PageSize).Run(ctx, Version)
}
