package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var uploadScopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/yt-analytics.readonly",
}

// Authenticator manages the YouTube OAuth flow and the on-disk token.
// It never opens a browser itself: callers receive the authorization
// URL and complete the flow through the callback endpoint.
type Authenticator struct {
	config    *oauth2.Config
	tokenPath string

	mu    sync.Mutex
	token *oauth2.Token
}

// NewAuthenticator reads the OAuth client credentials JSON and the
// previously saved token, if any.
func NewAuthenticator(credentialsPath, tokenPath, redirectURL string) (*Authenticator, error) {
	credentials, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credentials, uploadScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth config: %w", err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}

	a := &Authenticator{config: config, tokenPath: tokenPath}
	if token, err := loadToken(tokenPath); err == nil {
		a.token = token
	}
	return a, nil
}

// Authorized reports whether a usable token is on hand. A token with a
// refresh token counts even when the access token has expired.
func (a *Authenticator) Authorized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == nil {
		return false
	}
	return a.token.Valid() || a.token.RefreshToken != ""
}

// AuthURL returns the consent page URL to send the user to.
func (a *Authenticator) AuthURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and persists it.
func (a *Authenticator) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	a.mu.Lock()
	a.token = token
	a.mu.Unlock()

	return saveToken(a.tokenPath, token)
}

// TokenSource returns a refreshing token source for API clients.
func (a *Authenticator) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	a.mu.Lock()
	token := a.token
	a.mu.Unlock()
	if token == nil {
		return nil, ErrNotAuthorized
	}
	return a.config.TokenSource(ctx, token), nil
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse saved token: %w", err)
	}
	return &token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}
