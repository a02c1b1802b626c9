package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Provider names as they appear in routes and in player_auth_providers.
const (
	GitHub = "github"
	Google = "google"
)

// OAuthUser is the account a provider vouches for after a login.
type OAuthUser struct {
	ID            string
	Email         string
	EmailVerified bool
	Name          string
	AvatarURL     string
}

// Usable reports whether the account can sign a player in: it needs a
// provider id and a verified email.
func (u *OAuthUser) Usable() bool {
	return u.ID != "" && u.Email != "" && u.EmailVerified
}

// DisplayName falls back to the local part of the email when the provider
// has no name on file.
func (u *OAuthUser) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// Avatar is nil when the provider has no picture.
func (u *OAuthUser) Avatar() *string {
	if u.AvatarURL == "" {
		return nil
	}
	url := u.AvatarURL
	return &url
}

type OAuthProvider interface {
	Name() string
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error)
}

// oauthApp holds the parts of the authorization code flow that do not
// differ between providers.
type oauthApp struct {
	config *oauth2.Config
}

func (a oauthApp) GetAuthURL(state string) string {
	return a.config.AuthCodeURL(state)
}

func (a oauthApp) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// getJSON decodes the body of an authenticated GET into dst.
func (a oauthApp) getJSON(ctx context.Context, token *oauth2.Token, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := a.config.Client(ctx, token).Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
