package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Google  GoogleConfig  `mapstructure:"google"`
	Drive   DriveConfig   `mapstructure:"drive"`
	History HistoryConfig `mapstructure:"history"`
}

// GoogleConfig locates the OAuth client credentials and the cached token.
// A service account key in credentials_file is used directly; anything
// else is treated as an installed-app client and needs `docbridge auth`
// to mint the token first.
type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	TokenFile       string `mapstructure:"token_file"`
}

type DriveConfig struct {
	PageSize int64 `mapstructure:"page_size"` // results per `ls` / docs_list call
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // sqlite file for the batch audit log
}

// GetConfigDir returns the docbridge config directory, creating it if
// needed.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "docbridge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath(".")

	viper.SetDefault("google.credentials_file", filepath.Join(configPath, "credentials.json"))
	viper.SetDefault("google.token_file", filepath.Join(configPath, "token.json"))
	viper.SetDefault("drive.page_size", 25)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", filepath.Join(configPath, "history.db"))

	viper.SetEnvPrefix("DOCBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file is optional; defaults plus env cover the common case.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
