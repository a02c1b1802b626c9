package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"stars-server/internal/shared/errors"
)

type fakeLinks struct {
	links []PlayerAuthProvider
}

func (f *fakeLinks) CreateAuthProvider(ctx context.Context, playerID int, provider, providerUserID, providerEmail string) error {
	email := providerEmail
	f.links = append(f.links, PlayerAuthProvider{
		ID:             len(f.links) + 1,
		PlayerID:       playerID,
		Provider:       provider,
		ProviderUserID: providerUserID,
		ProviderEmail:  &email,
	})
	return nil
}

func (f *fakeLinks) FindPlayerByAuthProvider(ctx context.Context, provider, providerUserID string) (int, error) {
	for _, l := range f.links {
		if l.Provider == provider && l.ProviderUserID == providerUserID {
			return l.PlayerID, nil
		}
	}
	return 0, errors.NotFoundf("player not found for auth provider: %s", provider)
}

func (f *fakeLinks) ListByPlayer(ctx context.Context, playerID int) ([]PlayerAuthProvider, error) {
	out := []PlayerAuthProvider{}
	for _, l := range f.links {
		if l.PlayerID == playerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestServiceLinksProviders(t *testing.T) {
	store := &fakeLinks{}
	svc := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	if err := svc.CreateAuthProvider(ctx, 3, "github", "42", "Deneb@Example.com"); err != nil {
		t.Fatalf("Link failed: %v", err)
	}
	if err := svc.CreateAuthProvider(ctx, 3, "google", "abc", "deneb@example.com"); err != nil {
		t.Fatalf("Link failed: %v", err)
	}

	id, err := svc.FindPlayerByAuthProvider(ctx, "github", "42")
	if err != nil || id != 3 {
		t.Errorf("Expected player 3, got %d (%v)", id, err)
	}
	if _, err := svc.FindPlayerByAuthProvider(ctx, "github", "43"); errors.GetType(err) != errors.ErrorTypeNotFound {
		t.Errorf("Expected not found, got %v", err)
	}

	links, err := svc.LinkedProviders(ctx, 3)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(links) != 2 || *links[0].ProviderEmail != "deneb@example.com" {
		t.Errorf("Unexpected links %+v", links)
	}
}

func TestServiceRejectsIncompleteLink(t *testing.T) {
	svc := NewService(&fakeLinks{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := svc.CreateAuthProvider(context.Background(), 0, "github", "42", ""); errors.GetType(err) != errors.ErrorTypeValidation {
		t.Errorf("Expected validation error, got %v", err)
	}
}
