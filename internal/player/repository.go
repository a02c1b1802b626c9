package player

import (
	"context"
	"database/sql"
	"log/slog"

	"stars-server/internal/shared/database"
	"stars-server/internal/shared/errors"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

const playerColumns = `id, username, email, display_name, avatar_url, role, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*Player, error) {
	var p Player
	var role string
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.DisplayName,
		&p.AvatarURL,
		&role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Role = ParsePlayerRole(role)
	return &p, nil
}

func (r *Repository) GetPlayerCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count)
	if err != nil {
		return 0, errors.WrapInternal("failed to get player count", err)
	}
	return count, nil
}

func (r *Repository) GetAllPlayers(ctx context.Context) ([]Player, error) {
	logger := slog.With("component", "player_repository", "operation", "get_all")
	logger.Debug("Retrieving all players")

	rows, err := r.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.WrapInternal("failed to query players", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, errors.WrapInternal("failed to scan player", err)
		}
		players = append(players, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.WrapInternal("error iterating players", err)
	}

	logger.Debug("Players retrieved successfully", "count", len(players))
	return players, nil
}

func (r *Repository) CreatePlayer(ctx context.Context, username, email, displayName string, avatarURL *string, role PlayerRole) (*Player, error) {
	logger := slog.With(
		"component", "player_repository",
		"operation", "create",
		"username", username,
		"email", email,
	)
	logger.Info("Creating new player")

	query := `
		INSERT INTO players (username, email, display_name, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + playerColumns

	p, err := scanPlayer(r.db.QueryRowContext(ctx, query, username, email, displayName, avatarURL, role.String()))
	if err != nil {
		return nil, errors.WrapInternal("failed to create player", err)
	}

	logger.Info("Player created successfully", "player_id", p.ID, "username", p.Username)
	return p, nil
}

func (r *Repository) FindPlayerByEmail(ctx context.Context, email string) (*Player, error) {
	p, err := scanPlayer(r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("player not found with email: %s", email)
		}
		return nil, errors.WrapInternal("failed to find player by email", err)
	}
	return p, nil
}

func (r *Repository) GetPlayerByID(ctx context.Context, id int) (*Player, error) {
	p, err := scanPlayer(r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("player not found with id: %d", id)
		}
		return nil, errors.WrapInternal("failed to get player", err)
	}

	return p, nil
}

func (r *Repository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE username = $1)`, username).Scan(&taken)
	if err != nil {
		return false, errors.WrapInternal("failed to check username", err)
	}
	return taken, nil
}

func (r *Repository) UpdatePlayerRole(ctx context.Context, id int, role PlayerRole) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE players SET role = $1, updated_at = NOW() WHERE id = $2`, role.String(), id)
	if err != nil {
		return errors.WrapInternal("failed to update player role", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to read affected rows", err)
	}
	if n == 0 {
		return errors.NotFoundf("player not found with id: %d", id)
	}
	return nil
}
