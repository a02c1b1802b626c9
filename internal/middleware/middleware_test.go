package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stars-server/internal/auth"
	"stars-server/internal/shared/config"
	"stars-server/internal/shared/cookies"
	"stars-server/internal/shared/errors"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "0123456789abcdef0123456789abcdef",
			TokenExpiration: time.Hour,
		},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func authedRequest(t *testing.T, method, target string, playerID int, role string) *http.Request {
	t.Helper()
	token, err := auth.GenerateJWT(playerID, "tester", "tester@example.com", role)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	r := httptest.NewRequest(method, target, nil)
	r.AddCookie(&http.Cookie{Name: cookies.AuthCookieName, Value: token})
	return r
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestJWTMiddleware(t *testing.T) {
	setTestConfig(t)

	var seen *auth.Claims
	h := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserFromContext(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/players/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without cookie, got %d", w.Code)
	}

	bad := httptest.NewRequest(http.MethodGet, "/api/players/me", nil)
	bad.AddCookie(&http.Cookie{Name: cookies.AuthCookieName, Value: "garbage"})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, bad)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for invalid token, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/players/me", 7, "user"))
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 with valid token, got %d", w.Code)
	}
	if seen == nil || seen.PlayerID != 7 {
		t.Errorf("Expected claims for player 7 in context, got %+v", seen)
	}
}

func TestRequireAdmin(t *testing.T) {
	setTestConfig(t)
	h := RequireAdmin(okHandler)

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusNoContent},
		{"user", http.StatusForbidden},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/games", 1, tt.role))
		if w.Code != tt.want {
			t.Errorf("Role %s: expected %d, got %d", tt.role, tt.want, w.Code)
		}
	}
}

type fakeMembership map[string][]int

func (f fakeMembership) IsGameMember(ctx context.Context, publicID string, playerID int) (bool, error) {
	players, ok := f[publicID]
	if !ok {
		return false, errors.NotFoundf("game not found with id: %s", publicID)
	}
	for _, id := range players {
		if id == playerID {
			return true, nil
		}
	}
	return false, nil
}

func TestGameAccessMiddleware(t *testing.T) {
	setTestConfig(t)

	m := NewGameAccessMiddleware(fakeMembership{"g1": {3, 4}})
	mux := http.NewServeMux()
	mux.Handle("GET /api/games/{id}/state", m.Require(okHandler))

	tests := []struct {
		name     string
		gameID   string
		playerID int
		role     string
		want     int
	}{
		{"seated player", "g1", 3, "user", http.StatusNoContent},
		{"outsider", "g1", 9, "user", http.StatusForbidden},
		{"admin outsider", "g1", 9, "admin", http.StatusNoContent},
		{"unknown game", "g2", 3, "user", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authedRequest(t, http.MethodGet, "/api/games/"+tt.gameID+"/state", tt.playerID, tt.role))
			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2, Enabled: true})
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	codes := make([]int, 3)
	for i := range codes {
		r := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		r.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		codes[i] = w.Code
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent {
		t.Errorf("Expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be limited, got %d", codes[2])
	}

	other := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, other)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected a different client to have its own budget, got %d", w.Code)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	h := NewRateLimiter(config.RateLimitConfig{BurstSize: 0}).Middleware(okHandler)
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected disabled limiter to pass request %d, got %d", i, w.Code)
		}
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	start := time.Now()
	rl.now = func() time.Time { return start }

	rl.allow("10.0.0.1")
	rl.now = func() time.Time { return start.Add(2 * time.Minute) }
	rl.allow("10.0.0.2")

	rl.now = func() time.Time { return start.Add(clientIdleTTL + time.Second) }
	if n := rl.evictIdle(); n != 1 {
		t.Errorf("Expected 1 idle client evicted, got %d", n)
	}
	if _, ok := rl.clients["10.0.0.2"]; !ok {
		t.Error("Expected recent client to be kept")
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.1:12345"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := getClientIP(r, false); got != "192.168.1.1" {
		t.Errorf("Expected remote address when proxy untrusted, got %s", got)
	}
	if got := getClientIP(r, true); got != "203.0.113.7" {
		t.Errorf("Expected first forwarded address, got %s", got)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("Expected generated id echoed in header, got %q / %q", seen, w.Header().Get(RequestIDHeader))
	}

	const incoming = "3f2c6a3e-5b1d-4c8e-9f7a-1b2c3d4e5f60"
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen != incoming {
		t.Errorf("Expected incoming id %s to be kept, got %s", incoming, seen)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), r)
	if seen == "not-a-uuid" {
		t.Error("Expected malformed incoming id to be replaced")
	}
}

func TestCORS(t *testing.T) {
	h := NewCORS(config.FrontendConfig{URL: "http://localhost:3000/"}).Middleware(okHandler)

	tests := []struct {
		origin    string
		wantAllow string
	}{
		{"http://localhost:3000", "http://localhost:3000"},
		{"http://evil.example.com", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		r.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
			t.Errorf("Origin %s: expected allow-origin %q, got %q", tt.origin, tt.wantAllow, got)
		}
		if tt.wantAllow != "" && w.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Errorf("Origin %s: expected credentials to be allowed", tt.origin)
		}
	}
}

func TestWithClaims(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUserFromContext(r) != nil {
		t.Error("Expected no claims on bare request")
	}

	r = r.WithContext(WithClaims(r.Context(), &auth.Claims{PlayerID: 4}))
	if claims := GetUserFromContext(r); claims == nil || claims.PlayerID != 4 {
		t.Errorf("Expected claims for player 4, got %+v", claims)
	}
}
