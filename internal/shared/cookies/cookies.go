package cookies

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"stars-server/internal/shared/config"
)

// AuthCookieName is the cookie carrying the session JWT.
const AuthCookieName = "auth_token"

func SetAuthCookie(w http.ResponseWriter, token string) {
	cookie := authCookie(config.GlobalConfig)
	cookie.Value = token
	cookie.MaxAge = int(config.GlobalConfig.Auth.TokenExpiration.Seconds())
	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter) {
	cookie := authCookie(config.GlobalConfig)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

// ReadAuthToken returns the session token sent with r, if any.
func ReadAuthToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func authCookie(cfg *config.Config) *http.Cookie {
	sameSite := parseSameSite(cfg.Auth.CookieSameSite)
	return &http.Cookie{
		Name:     AuthCookieName,
		Path:     "/",
		Domain:   cookieDomain(cfg.Frontend.URL),
		HttpOnly: true,
		// Browsers drop SameSite=None cookies that are not Secure.
		Secure:   cfg.Auth.CookieSecure || sameSite == http.SameSiteNoneMode,
		SameSite: sameSite,
	}
}

// cookieDomain scopes the cookie to the frontend host. Local and IP hosts get
// a host-only cookie.
func cookieDomain(frontendURL string) string {
	u, err := url.Parse(frontendURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" || host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}
	return host
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
