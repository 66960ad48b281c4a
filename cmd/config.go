package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("config file:      %s\n", filepath.Join(dir, "config.yaml"))
	fmt.Printf("credentials_file: %s\n", cfg.Google.CredentialsFile)
	fmt.Printf("token_file:       %s\n", cfg.Google.TokenFile)
	fmt.Printf("history.enabled:  %v\n", cfg.History.Enabled)
	fmt.Printf("history.path:     %s\n", cfg.History.Path)
	fmt.Printf("drive.page_size:  %d\n", cfg.Drive.PageSize)
	return nil
}
