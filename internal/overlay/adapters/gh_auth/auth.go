// Package ghauth builds authenticated GitHub clients from either a
// personal access token or GitHub App installation credentials.
package ghauth

import (
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v68/github"
)

// AppConfig holds GitHub App credentials for installation auth.
type AppConfig struct {
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
}

// NewTokenClient returns a client authenticated with a personal access token.
func NewTokenClient(token string) *github.Client {
	return github.NewClient(nil).WithAuthToken(token)
}

// NewAppClient returns a client authenticated as a GitHub App installation.
func NewAppClient(cfg AppConfig) (*github.Client, error) {
	itr, err := ghinstallation.NewKeyFromFile(
		http.DefaultTransport,
		cfg.AppID,
		cfg.InstallationID,
		cfg.PrivateKeyPath,
	)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}
	return github.NewClient(&http.Client{Transport: itr}), nil
}
