package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/oauth2"
)

const gitHubAPIBase = "https://api.github.com"

type gitHubUser struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

type gitHubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

type GitHubProvider struct {
	oauthApp
	apiBase string
}

func NewGitHubProvider(config *oauth2.Config) *GitHubProvider {
	return &GitHubProvider{oauthApp: oauthApp{config: config}, apiBase: gitHubAPIBase}
}

func (p *GitHubProvider) Name() string {
	return GitHub
}

// GetUserInfo reads the profile and the email list. The profile email is not
// trusted; only a verified entry of the email list is, preferring the
// primary one. Without one the user comes back unverified.
func (p *GitHubProvider) GetUserInfo(ctx context.Context, token *oauth2.Token) (*OAuthUser, error) {
	logger := slog.With("provider", GitHub, "operation", "get_user_info")

	var profile gitHubUser
	if err := p.getJSON(ctx, token, p.apiBase+"/user", &profile); err != nil {
		return nil, fmt.Errorf("github profile: %w", err)
	}
	if profile.ID == 0 {
		return nil, fmt.Errorf("github profile has no user id")
	}

	user := &OAuthUser{
		ID:        strconv.FormatInt(profile.ID, 10),
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
	}
	if user.Name == "" {
		user.Name = profile.Login
	}

	var emails []gitHubEmail
	if err := p.getJSON(ctx, token, p.apiBase+"/user/emails", &emails); err != nil {
		logger.Warn("Could not list GitHub emails", "github_user_id", profile.ID, "error", err)
		return user, nil
	}
	if email, ok := verifiedEmail(emails); ok {
		user.Email = email
		user.EmailVerified = true
	}

	logger.Debug("Fetched GitHub user", "github_user_id", profile.ID, "verified", user.EmailVerified)
	return user, nil
}

func verifiedEmail(emails []gitHubEmail) (string, bool) {
	fallback := ""
	for _, e := range emails {
		if !e.Verified {
			continue
		}
		if e.Primary {
			return e.Email, true
		}
		if fallback == "" {
			fallback = e.Email
		}
	}
	return fallback, fallback != ""
}
