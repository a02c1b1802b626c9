package auth

import (
	"log/slog"

	"stars-server/internal/auth/providers"
	"stars-server/internal/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

// ConfiguredProvider pairs a login provider with whether its credentials are set.
type ConfiguredProvider struct {
	Provider   providers.OAuthProvider
	Configured bool
}

// InitOAuth builds the GitHub and Google providers from the global config.
func InitOAuth() []ConfiguredProvider {
	cfg := config.GlobalConfig
	logger := slog.With("component", "oauth", "operation", "init")
	logger.Debug("Initializing OAuth configurations")

	githubConfig := oauthConfig(cfg.OAuth.GitHub, github.Endpoint)
	googleConfig := oauthConfig(cfg.OAuth.Google, google.Endpoint)

	githubConfigured := cfg.OAuth.GitHub.Configured()
	googleConfigured := cfg.OAuth.Google.Configured()

	logger.Info("OAuth configuration completed",
		"server_url", cfg.Server.URL,
		"github_configured", githubConfigured,
		"google_configured", googleConfigured,
		"github_redirect", githubConfig.RedirectURL,
		"google_redirect", googleConfig.RedirectURL,
	)

	if !githubConfigured {
		logger.Warn("GitHub OAuth not configured - missing client credentials")
	}
	if !googleConfigured {
		logger.Warn("Google OAuth not configured - missing client credentials")
	}

	return []ConfiguredProvider{
		{Provider: providers.NewGitHubProvider(githubConfig), Configured: githubConfigured},
		{Provider: providers.NewGoogleProvider(googleConfig), Configured: googleConfigured},
	}
}

func oauthConfig(p config.ProviderConfig, endpoint oauth2.Endpoint) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURL,
		Scopes:       p.Scopes,
		Endpoint:     endpoint,
	}
}
