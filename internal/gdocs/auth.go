package gdocs

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/docbridge/docbridge/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var scopes = []string{docs.DocumentsScope, drive.DriveReadonlyScope}

// clientOptions resolves credentials without any interactivity, so it is
// safe to call from the stdio MCP server. Resolution order: service
// account key, installed-app client with a cached token, application
// default credentials.
func clientOptions(ctx context.Context, cfg *config.Config) ([]option.ClientOption, error) {
	raw, err := os.ReadFile(cfg.Google.CredentialsFile)
	if os.IsNotExist(err) {
		// Fall through to application default credentials.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	if isServiceAccount(raw) {
		return []option.ClientOption{
			option.WithCredentialsJSON(raw),
			option.WithScopes(scopes...),
		}, nil
	}

	oauthCfg, err := google.ConfigFromJSON(raw, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	tok, err := tokenFromFile(cfg.Google.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("no cached token (run `docbridge auth` first): %w", err)
	}
	return []option.ClientOption{
		option.WithHTTPClient(oauthCfg.Client(ctx, tok)),
	}, nil
}

// Authorize runs the installed-app OAuth flow interactively: print the
// consent URL, read the verification code from stdin, cache the token.
func Authorize(ctx context.Context, cfg *config.Config) error {
	raw, err := os.ReadFile(cfg.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("read credentials %s: %w", cfg.Google.CredentialsFile, err)
	}
	if isServiceAccount(raw) {
		return fmt.Errorf("%s is a service account key; no authorization needed", cfg.Google.CredentialsFile)
	}
	oauthCfg, err := google.ConfigFromJSON(raw, scopes...)
	if err != nil {
		return fmt.Errorf("parse oauth client: %w", err)
	}

	url := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Open this URL in your browser, then paste the code:\n\n  %s\n\ncode: ", url)

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read authorization code: %w", err)
	}
	tok, err := oauthCfg.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if err := saveToken(cfg.Google.TokenFile, tok); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Token saved to %s\n", cfg.Google.TokenFile)
	return nil
}

func isServiceAccount(raw []byte) bool {
	var key struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(raw, &key) == nil && key.Type == "service_account"
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
