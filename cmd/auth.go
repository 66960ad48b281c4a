package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/config"
	"github.com/docbridge/docbridge/internal/gdocs"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize docbridge with your Google account",
	Long: `Run the OAuth consent flow and cache the resulting token.

Place an installed-app OAuth client file at the configured
google.credentials_file path first (default: ~/.config/docbridge/credentials.json).
Service account keys skip this step entirely.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return gdocs.Authorize(cmd.Context(), cfg)
}
