package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stars-server/internal/auth"
	"stars-server/internal/middleware"
	"stars-server/internal/player"
	"stars-server/internal/shared/errors"
)

type fakePlayers struct {
	players []player.Player
}

func (f *fakePlayers) GetAllPlayers(ctx context.Context) ([]player.Player, error) {
	return f.players, nil
}

func (f *fakePlayers) GetPlayerByID(ctx context.Context, id int) (*player.Player, error) {
	for _, p := range f.players {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.NotFoundf("player not found: %d", id)
}

type fakeLinks map[int][]auth.PlayerAuthProvider

func (f fakeLinks) LinkedProviders(ctx context.Context, playerID int) ([]auth.PlayerAuthProvider, error) {
	return f[playerID], nil
}

func testPlayers() *fakePlayers {
	joined := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &fakePlayers{players: []player.Player{
		{ID: 1, Username: "altair", Email: "altair@example.com", DisplayName: "Altair", Role: player.PlayerRoleAdmin, CreatedAt: joined},
		{ID: 2, Username: "vega", Email: "vega@example.com", DisplayName: "Vega", Role: player.PlayerRoleUser, CreatedAt: joined},
	}}
}

func TestPlayersHandlerHidesEmails(t *testing.T) {
	w := httptest.NewRecorder()
	NewPlayersHandler(testPlayers()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/players", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "example.com") {
		t.Errorf("Expected no email addresses in %s", w.Body.String())
	}

	var profiles []player.Profile
	if err := json.NewDecoder(w.Body).Decode(&profiles); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(profiles) != 2 || profiles[1].Username != "vega" || profiles[0].Role != player.PlayerRoleAdmin {
		t.Errorf("Unexpected profiles %+v", profiles)
	}
}

func TestMeHandler(t *testing.T) {
	h := NewMeHandler(testPlayers(), fakeLinks{
		2: {{Provider: "github"}, {Provider: "google"}},
	})

	tests := []struct {
		name   string
		claims *auth.Claims
		want   int
	}{
		{"no claims", nil, http.StatusUnauthorized},
		{"unknown player", &auth.Claims{PlayerID: 99}, http.StatusNotFound},
		{"known player", &auth.Claims{PlayerID: 2}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/players/me", nil)
			if tt.claims != nil {
				r = r.WithContext(middleware.WithClaims(r.Context(), tt.claims))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != tt.want {
				t.Fatalf("Expected %d, got %d", tt.want, w.Code)
			}
			if tt.want != http.StatusOK {
				return
			}

			var resp MeResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Email != "vega@example.com" {
				t.Errorf("Expected own email, got %q", resp.Email)
			}
			if len(resp.Providers) != 2 || resp.Providers[0] != "github" {
				t.Errorf("Expected github and google, got %v", resp.Providers)
			}
		})
	}
}
