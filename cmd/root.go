package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/config"
	"github.com/docbridge/docbridge/internal/gdocs"
	"github.com/docbridge/docbridge/internal/logger"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "docbridge",
	Short: "Bridge Google Docs and Markdown",
	Long: `docbridge converts Google Docs to Markdown and back.

Examples:
  docbridge cat 1aBcD...                 # print a document as Markdown
  docbridge push 1aBcD... notes.md       # append Markdown to a document
  docbridge create "Meeting notes"       # create an empty document
  docbridge ls roadmap                   # find documents by name
  docbridge serve                        # run the MCP server over stdio`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	return logger.New(verbose)
}

func newClient(ctx context.Context) (*gdocs.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	client, err := gdocs.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
