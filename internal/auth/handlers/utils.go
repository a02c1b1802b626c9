package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"stars-server/internal/shared/config"
)

// resolveRedirectURI accepts a post-login redirect only on the frontend's
// own origin and falls back to the frontend URL otherwise.
func resolveRedirectURI(requested string) string {
	frontend := strings.TrimRight(config.GlobalConfig.Frontend.URL, "/")
	if requested == "" {
		return frontend
	}

	want, err := url.Parse(frontend)
	if err != nil {
		return frontend
	}
	got, err := url.Parse(requested)
	if err != nil || got.Scheme != want.Scheme || got.Host != want.Host {
		return frontend
	}

	return strings.TrimRight(requested, "/")
}

// redirectWithError redirects to the frontend error page
func redirectWithError(w http.ResponseWriter, r *http.Request, redirectURI, errorType string) {
	if redirectURI == "" {
		redirectURI = strings.TrimRight(config.GlobalConfig.Frontend.URL, "/")
	}
	errorURL := fmt.Sprintf("%s/auth/error?error=%s", redirectURI, url.QueryEscape(errorType))

	http.Redirect(w, r, errorURL, http.StatusTemporaryRedirect)
}
