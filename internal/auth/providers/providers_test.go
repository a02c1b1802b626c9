package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func testToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "token", TokenType: "Bearer"}
}

func TestGitHubUserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         42,
			"email":      "public@example.com",
			"name":       "Rigel",
			"avatar_url": "https://avatars.example.com/42",
		})
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"email": "old@example.com", "primary": false, "verified": true},
			{"email": "main@example.com", "primary": true, "verified": true},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewGitHubProvider(&oauth2.Config{})
	p.apiBase = srv.URL

	user, err := p.GetUserInfo(context.Background(), testToken())
	if err != nil {
		t.Fatalf("Expected user info, got %v", err)
	}
	if user.ID != "42" || user.Name != "Rigel" {
		t.Errorf("Unexpected user %+v", user)
	}
	if user.Email != "main@example.com" || !user.EmailVerified {
		t.Errorf("Expected primary verified email, got %q (verified=%v)", user.Email, user.EmailVerified)
	}
	if p.Name() != "github" {
		t.Errorf("Expected provider name github, got %q", p.Name())
	}
}

func TestGitHubUserInfoWithoutVerifiedEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "email": "public@example.com"})
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"email": "public@example.com", "primary": true, "verified": false},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewGitHubProvider(&oauth2.Config{})
	p.apiBase = srv.URL

	user, err := p.GetUserInfo(context.Background(), testToken())
	if err != nil {
		t.Fatalf("Expected user info, got %v", err)
	}
	if user.EmailVerified || user.Email != "" {
		t.Errorf("Expected no verified email, got %+v", user)
	}
}

func TestGitHubUserInfoErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewGitHubProvider(&oauth2.Config{})
	p.apiBase = srv.URL

	if _, err := p.GetUserInfo(context.Background(), testToken()); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestGoogleUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "g-1",
			"email":          "vega@example.com",
			"verified_email": true,
			"name":           "Vega",
			"picture":        "https://pics.example.com/vega",
		})
	}))
	defer srv.Close()

	p := NewGoogleProvider(&oauth2.Config{})
	p.userInfoURL = srv.URL

	user, err := p.GetUserInfo(context.Background(), testToken())
	if err != nil {
		t.Fatalf("Expected user info, got %v", err)
	}
	want := OAuthUser{ID: "g-1", Email: "vega@example.com", EmailVerified: true, Name: "Vega", AvatarURL: "https://pics.example.com/vega"}
	if *user != want {
		t.Errorf("Expected %+v, got %+v", want, *user)
	}
}

func TestProvidersImplementInterface(t *testing.T) {
	var _ OAuthProvider = NewGitHubProvider(&oauth2.Config{})
	var _ OAuthProvider = NewGoogleProvider(&oauth2.Config{})
}

func TestOAuthUserHelpers(t *testing.T) {
	tests := []struct {
		user   OAuthUser
		usable bool
		name   string
	}{
		{OAuthUser{ID: "1", Email: "vega@example.com", EmailVerified: true, Name: " Vega "}, true, "Vega"},
		{OAuthUser{ID: "1", Email: "vega@example.com", EmailVerified: true}, true, "vega"},
		{OAuthUser{ID: "1", Email: "vega@example.com"}, false, "vega"},
		{OAuthUser{Email: "vega@example.com", EmailVerified: true}, false, "vega"},
	}

	for _, tt := range tests {
		if got := tt.user.Usable(); got != tt.usable {
			t.Errorf("Usable() for %+v: expected %v, got %v", tt.user, tt.usable, got)
		}
		if got := tt.user.DisplayName(); got != tt.name {
			t.Errorf("DisplayName() for %+v: expected %q, got %q", tt.user, tt.name, got)
		}
	}

	if (&OAuthUser{}).Avatar() != nil {
		t.Error("Expected nil avatar when none is set")
	}
	if a := (&OAuthUser{AvatarURL: "https://img"}).Avatar(); a == nil || *a != "https://img" {
		t.Errorf("Expected avatar pointer, got %v", a)
	}
}

func TestVerifiedEmail(t *testing.T) {
	tests := []struct {
		name   string
		emails []gitHubEmail
		want   string
	}{
		{"primary wins", []gitHubEmail{{"a@x", false, true}, {"b@x", true, true}}, "b@x"},
		{"first verified fallback", []gitHubEmail{{"a@x", true, false}, {"b@x", false, true}, {"c@x", false, true}}, "b@x"},
		{"none verified", []gitHubEmail{{"a@x", true, false}}, ""},
	}

	for _, tt := range tests {
		got, ok := verifiedEmail(tt.emails)
		if got != tt.want || ok != (tt.want != "") {
			t.Errorf("%s: expected %q, got %q (%v)", tt.name, tt.want, got, ok)
		}
	}
}

func TestGitHubFallsBackToLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 9, "login": "deneb"})
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewGitHubProvider(&oauth2.Config{})
	p.apiBase = srv.URL

	user, err := p.GetUserInfo(context.Background(), testToken())
	if err != nil {
		t.Fatalf("Expected user info, got %v", err)
	}
	if user.Name != "deneb" || user.Usable() {
		t.Errorf("Expected unusable user named after login, got %+v", user)
	}
}
