package auth

import (
	"context"
	"database/sql"

	"stars-server/internal/shared/database"
	"stars-server/internal/shared/errors"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthProvider links an external account to a player. Linking the same
// account to the same player twice is a no-op.
func (r *Repository) CreateAuthProvider(ctx context.Context, playerID int, provider, providerUserID, providerEmail string) error {
	query := `
		INSERT INTO player_auth_providers (player_id, provider, provider_user_id, provider_email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider, provider_user_id) DO UPDATE
			SET provider_email = EXCLUDED.provider_email
			WHERE player_auth_providers.player_id = EXCLUDED.player_id
	`

	result, err := r.db.ExecContext(ctx, query, playerID, provider, providerUserID, providerEmail)
	if err != nil {
		return errors.WrapInternal("failed to create auth provider", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return errors.Conflictf("%s account is already linked to another player", provider)
	}
	return nil
}

func (r *Repository) FindPlayerByAuthProvider(ctx context.Context, provider, providerUserID string) (int, error) {
	query := `
		SELECT player_id
		FROM player_auth_providers
		WHERE provider = $1 AND provider_user_id = $2
	`

	var playerID int
	err := r.db.QueryRowContext(ctx, query, provider, providerUserID).Scan(&playerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, errors.NotFoundf("player not found for auth provider: %s", provider)
		}
		return 0, errors.WrapInternal("failed to find player by auth provider", err)
	}

	return playerID, nil
}

func (r *Repository) ListByPlayer(ctx context.Context, playerID int) ([]PlayerAuthProvider, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_id, provider, provider_user_id, provider_email, created_at
		FROM player_auth_providers
		WHERE player_id = $1
		ORDER BY created_at`, playerID)
	if err != nil {
		return nil, errors.WrapInternal("failed to list auth providers", err)
	}
	defer rows.Close()

	links := []PlayerAuthProvider{}
	for rows.Next() {
		var l PlayerAuthProvider
		if err := rows.Scan(&l.ID, &l.PlayerID, &l.Provider, &l.ProviderUserID, &l.ProviderEmail, &l.CreatedAt); err != nil {
			return nil, errors.WrapInternal("failed to scan auth provider", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapInternal("failed to list auth providers", err)
	}
	return links, nil
}
