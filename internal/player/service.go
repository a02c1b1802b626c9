package player

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"stars-server/internal/shared/config"
	"stars-server/internal/shared/errors"
)

const (
	maxUsernameLen      = 40
	usernameSuffixTries = 20
)

// Store is the persistence the player service relies on.
type Store interface {
	GetPlayerCount(ctx context.Context) (int, error)
	GetAllPlayers(ctx context.Context) ([]Player, error)
	GetPlayerByID(ctx context.Context, id int) (*Player, error)
	FindPlayerByEmail(ctx context.Context, email string) (*Player, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	CreatePlayer(ctx context.Context, username, email, displayName string, avatarURL *string, role PlayerRole) (*Player, error)
	UpdatePlayerRole(ctx context.Context, id int, role PlayerRole) error
}

type Service struct {
	repo   Store
	admin  config.AdminConfig
	logger *slog.Logger
}

func NewService(repo Store, admin config.AdminConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		admin:  admin,
		logger: logger.With("component", "player_service"),
	}
}

func (s *Service) GetPlayerCount(ctx context.Context) (int, error) {
	return s.repo.GetPlayerCount(ctx)
}

func (s *Service) GetAllPlayers(ctx context.Context) ([]Player, error) {
	return s.repo.GetAllPlayers(ctx)
}

func (s *Service) GetPlayerByID(ctx context.Context, id int) (*Player, error) {
	return s.repo.GetPlayerByID(ctx, id)
}

func (s *Service) isAdminEmail(email string) bool {
	return s.admin.Email != "" && strings.EqualFold(email, s.admin.Email)
}

// FindOrCreatePlayerByOAuth returns the player owning email, creating one on
// first login. The configured admin email always ends up with the admin role.
func (s *Service) FindOrCreatePlayerByOAuth(ctx context.Context, provider, providerUserID, email, displayName string, avatarURL *string) (*Player, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	logger := s.logger.With("operation", "find_or_create_oauth", "provider", provider)

	existing, err := s.repo.FindPlayerByEmail(ctx, email)
	switch {
	case err == nil:
		if s.isAdminEmail(email) && !existing.IsAdmin() {
			logger.Info("Promoting configured admin", "player_id", existing.ID)
			if err := s.repo.UpdatePlayerRole(ctx, existing.ID, PlayerRoleAdmin); err != nil {
				return nil, err
			}
			existing.Role = PlayerRoleAdmin
		}
		return existing, nil
	case errors.GetType(err) != errors.ErrorTypeNotFound:
		return nil, err
	}

	role := PlayerRoleUser
	base := usernameBase(email)
	if s.isAdminEmail(email) {
		role = PlayerRoleAdmin
		base = s.admin.Username
		displayName = s.admin.DisplayName
	}

	username, err := s.uniqueUsername(ctx, base)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = username
	}

	p, err := s.repo.CreatePlayer(ctx, username, email, displayName, avatarURL, role)
	if err != nil {
		return nil, err
	}

	logger.Info("Created player on first login",
		"player_id", p.ID,
		"username", p.Username,
		"role", p.Role,
		"provider_user_id", providerUserID)
	return p, nil
}

// uniqueUsername returns base, or base followed by the lowest free number.
func (s *Service) uniqueUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 2; n <= usernameSuffixTries+1; n++ {
		taken, err := s.repo.UsernameTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, n)
	}
	return base + "-" + uuid.NewString()[:8], nil
}

// usernameBase derives a username from the local part of an email, without
// any +tag, keeping letters, digits, dots, dashes and underscores.
func usernameBase(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local, _, _ = strings.Cut(local, "+")
	name := strings.Map(func(r rune) rune {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return unicode.ToLower(r)
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return -1
	}, local)

	if len(name) > maxUsernameLen {
		name = name[:maxUsernameLen]
	}
	if name == "" {
		return "player"
	}
	return name
}
