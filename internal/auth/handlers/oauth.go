package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"stars-server/internal/auth"
	"stars-server/internal/auth/providers"
	"stars-server/internal/player"
	"stars-server/internal/shared/cookies"
	"stars-server/internal/shared/errors"
	"stars-server/internal/shared/response"
)

const providerTimeout = 30 * time.Second

// PlayerAccounts is the part of the player service the login flow needs.
type PlayerAccounts interface {
	GetPlayerByID(ctx context.Context, id int) (*player.Player, error)
	FindOrCreatePlayerByOAuth(ctx context.Context, provider, providerUserID, email, displayName string, avatarURL *string) (*player.Player, error)
}

// ProviderLinks records which external account belongs to which player.
type ProviderLinks interface {
	FindPlayerByAuthProvider(ctx context.Context, provider, providerUserID string) (int, error)
	CreateAuthProvider(ctx context.Context, playerID int, provider, providerUserID, providerEmail string) error
}

// OAuthHandler runs the login flow for one provider.
type OAuthHandler struct {
	provider   providers.OAuthProvider
	players    PlayerAccounts
	links      ProviderLinks
	states     auth.StateStore
	configured bool
}

func NewOAuthHandler(provider providers.OAuthProvider, players PlayerAccounts, links ProviderLinks, states auth.StateStore, configured bool) *OAuthHandler {
	return &OAuthHandler{
		provider:   provider,
		players:    players,
		links:      links,
		states:     states,
		configured: configured,
	}
}

// HandleAuth redirects the browser to the provider's consent page.
func (h *OAuthHandler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	logger := slog.With("handler", "oauth_init", "provider", name)

	if !h.configured {
		response.Error(w, r, logger, errors.External(fmt.Sprintf("%s OAuth is not properly configured", name)))
		return
	}

	redirectURI := resolveRedirectURI(r.URL.Query().Get("redirect_uri"))
	state, err := auth.IssueState(r.Context(), h.states, name, r.UserAgent(), redirectURI)
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to initialize OAuth flow", err))
		return
	}

	http.Redirect(w, r, h.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// HandleCallback finishes the flow: it checks the state, fetches the
// provider profile, finds or creates the player and sets the session cookie.
// Every failure ends in a redirect to the frontend error page.
func (h *OAuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	name := h.provider.Name()
	q := r.URL.Query()
	logger := slog.With("handler", "oauth_callback", "provider", name, "remote_addr", r.RemoteAddr)

	// An unusable state falls back to the frontend URL for the error redirect.
	redirectURI := ""
	state, stateErr := auth.RedeemState(r.Context(), h.states, q.Get("state"), name, r.UserAgent())
	if stateErr == nil {
		redirectURI = state.RedirectURI
	}

	fail := func(kind string, err error) {
		logger.Warn("OAuth login failed", "reason", kind, "error", err)
		redirectWithError(w, r, redirectURI, kind)
	}

	switch {
	case q.Get("error") != "":
		fail("oauth_denied", fmt.Errorf("%s: %s", q.Get("error"), q.Get("error_description")))
		return
	case stateErr != nil:
		fail("invalid_state", stateErr)
		return
	case q.Get("code") == "":
		fail("oauth_error", fmt.Errorf("callback without authorization code"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), providerTimeout)
	defer cancel()

	token, err := h.provider.ExchangeCode(ctx, q.Get("code"))
	if err != nil {
		fail("oauth_error", err)
		return
	}

	user, err := h.provider.GetUserInfo(ctx, token)
	if err != nil {
		fail("oauth_error", err)
		return
	}
	if !user.Usable() {
		fail("oauth_error", fmt.Errorf("provider account %q has no verified email", user.ID))
		return
	}

	p, err := h.resolvePlayer(ctx, name, user)
	if err != nil {
		fail("database_error", err)
		return
	}

	session, err := auth.GenerateJWT(p.ID, p.Username, p.Email, p.Role.String())
	if err != nil {
		fail("auth_error", err)
		return
	}
	cookies.SetAuthCookie(w, session)

	logger.Info("OAuth login succeeded", "player_id", p.ID, "role", p.Role)
	http.Redirect(w, r, redirectURI+"/auth/callback?success=true", http.StatusTemporaryRedirect)
}

// resolvePlayer returns the player already linked to the provider account,
// or finds one by email (creating it if needed) and links it.
func (h *OAuthHandler) resolvePlayer(ctx context.Context, provider string, user *providers.OAuthUser) (*player.Player, error) {
	playerID, err := h.links.FindPlayerByAuthProvider(ctx, provider, user.ID)
	if err != nil && errors.GetType(err) != errors.ErrorTypeNotFound {
		return nil, err
	}
	if playerID > 0 {
		return h.players.GetPlayerByID(ctx, playerID)
	}

	p, err := h.players.FindOrCreatePlayerByOAuth(ctx, provider, user.ID, user.Email, user.DisplayName(), user.Avatar())
	if err != nil {
		return nil, err
	}
	if err := h.links.CreateAuthProvider(ctx, p.ID, provider, user.ID, user.Email); err != nil {
		return nil, err
	}
	return p, nil
}
