package auth

import (
	"context"
	"log/slog"
	"strings"

	"stars-server/internal/shared/errors"
)

// LinkStore persists the links between players and external accounts.
type LinkStore interface {
	CreateAuthProvider(ctx context.Context, playerID int, provider, providerUserID, providerEmail string) error
	FindPlayerByAuthProvider(ctx context.Context, provider, providerUserID string) (int, error)
	ListByPlayer(ctx context.Context, playerID int) ([]PlayerAuthProvider, error)
}

type Service struct {
	repo   LinkStore
	logger *slog.Logger
}

func NewService(repo LinkStore, logger *slog.Logger) *Service {
	logger.Debug("Initializing auth service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateAuthProvider(ctx context.Context, playerID int, provider, providerUserID, providerEmail string) error {
	if playerID <= 0 || provider == "" || providerUserID == "" {
		return errors.Validation("player, provider and provider user id are required")
	}
	s.logger.Debug("Linking auth provider",
		"component", "auth_service",
		"player_id", playerID,
		"provider", provider)
	return s.repo.CreateAuthProvider(ctx, playerID, provider, providerUserID, strings.ToLower(providerEmail))
}

func (s *Service) FindPlayerByAuthProvider(ctx context.Context, provider, providerUserID string) (int, error) {
	return s.repo.FindPlayerByAuthProvider(ctx, provider, providerUserID)
}

// LinkedProviders lists the external accounts a player can sign in with.
func (s *Service) LinkedProviders(ctx context.Context, playerID int) ([]PlayerAuthProvider, error) {
	return s.repo.ListByPlayer(ctx, playerID)
}
