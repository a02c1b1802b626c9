package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create issuer: %v", err)
	}

	token, err := issuer.Generate(7, "rigel", "rigel@example.com", "admin")
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.PlayerID != 7 || claims.Username != "rigel" || !claims.IsAdmin() {
		t.Errorf("Unexpected claims %+v", claims)
	}
	if claims.Subject != "player_7" {
		t.Errorf("Expected subject player_7, got %q", claims.Subject)
	}
}

func TestTokenRejected(t *testing.T) {
	issuer, _ := NewTokenIssuer(testSecret, time.Hour)
	other, _ := NewTokenIssuer(strings.Repeat("x", 32), time.Hour)
	expired, _ := NewTokenIssuer(testSecret, -time.Minute)

	foreign, _ := other.Generate(1, "a", "a@example.com", "user")
	stale, _ := expired.Generate(1, "a", "a@example.com", "user")

	for name, token := range map[string]string{
		"wrong secret": foreign,
		"expired":      stale,
		"garbage":      "not-a-token",
	} {
		if _, err := issuer.Validate(token); err == nil {
			t.Errorf("%s: expected validation to fail", name)
		}
	}
}

func TestNewTokenIssuerShortSecret(t *testing.T) {
	if _, err := NewTokenIssuer("short", time.Hour); err == nil {
		t.Error("Expected error for short secret")
	}
}
