package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"stars-server/internal/shared/database"
	"stars-server/internal/shared/errors"
	"stars-server/internal/universe"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing game repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const gameColumns = `id, public_id, name, status, year, size, density, clumping,
	starting_distance, seed, planet_count, fingerprint, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (*Game, error) {
	var (
		g                       Game
		size, density, distance string
		seed                    int64
	)
	err := row.Scan(
		&g.ID,
		&g.PublicID,
		&g.Name,
		&g.Status,
		&g.Year,
		&size,
		&density,
		&g.Settings.Clumping,
		&distance,
		&seed,
		&g.PlanetCount,
		&g.Fingerprint,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if g.Settings.Size, err = universe.ParseSizeClass(size); err != nil {
		return nil, fmt.Errorf("game %d: %w", g.ID, err)
	}
	if g.Settings.Density, err = universe.ParseDensityClass(density); err != nil {
		return nil, fmt.Errorf("game %d: %w", g.ID, err)
	}
	if g.Settings.StartingDistance, err = universe.ParseStartingDistance(distance); err != nil {
		return nil, fmt.Errorf("game %d: %w", g.ID, err)
	}
	// Seeds are stored bit-for-bit in a signed BIGINT.
	g.Settings.Seed = uint64(seed)
	return &g, nil
}

// CreateGame stores a game in creating status together with its players and
// the universe for its starting year, all in one transaction.
func (r *Repository) CreateGame(ctx context.Context, g *Game, u *universe.Universe) (*Game, error) {
	logger := r.logger.With(
		"component", "game_repository",
		"operation", "create_game",
		"public_id", g.PublicID,
		"name", g.Name,
		"players", len(g.Players),
	)
	logger.Info("Creating new game")

	data, checksum, err := encodeState(u)
	if err != nil {
		logger.Error("Failed to encode universe", "error", err)
		return nil, errors.WrapInternal("failed to encode universe", err)
	}

	query := `
		INSERT INTO games (public_id, name, status, year, size, density, clumping, starting_distance, seed, planet_count, fingerprint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + gameColumns

	var created *Game
	err = r.db.WithTx(ctx, func(tx *database.Tx) error {
		var err error
		created, err = scanGame(tx.QueryRowContext(ctx, query,
			g.PublicID,
			g.Name,
			GameStatusCreating,
			g.Year,
			g.Settings.Size.String(),
			g.Settings.Density.String(),
			g.Settings.Clumping,
			g.Settings.StartingDistance.String(),
			int64(g.Settings.Seed),
			len(u.Planets),
			g.Fingerprint,
		))
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}

		if err := insertPlayers(ctx, tx, created.ID, g.Players); err != nil {
			return fmt.Errorf("insert players: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO game_states (game_id, year, data, checksum) VALUES ($1, $2, $3, $4)`,
			created.ID, created.Year, string(data), checksum)
		if err != nil {
			return fmt.Errorf("insert state: %w", err)
		}

		if err := activateGame(ctx, tx, created.ID); err != nil {
			return fmt.Errorf("activate game: %w", err)
		}
		created.Status = GameStatusActive
		return nil
	})
	if err != nil {
		logger.Error("Failed to store game", "error", err)
		return nil, errors.WrapInternal("failed to create game", err)
	}

	created.Players = g.Players
	logger.Info("Game created and activated", "game_id", created.ID, "planets", created.PlanetCount, "state_bytes", len(data))
	return created, nil
}

func insertPlayers(ctx context.Context, exec database.Executor, gameID int, players []GamePlayer) error {
	query := `
		INSERT INTO game_players (game_id, number, name, race, player_id, homeworld_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, p := range players {
		if _, err := exec.ExecContext(ctx, query, gameID, p.Number, p.Name, string(p.Race), p.PlayerID, p.HomeworldID); err != nil {
			return fmt.Errorf("player %d: %w", p.Number, err)
		}
	}
	return nil
}

// activateGame moves a freshly inserted game from creating to active.
func activateGame(ctx context.Context, exec database.Executor, gameID int) error {
	result, err := exec.ExecContext(ctx, `
		UPDATE games
		SET status = 'active', updated_at = NOW()
		WHERE id = $1 AND status = 'creating'
	`, gameID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("game %d is not in creating status", gameID)
	}
	return nil
}

func (r *Repository) GetAllGames(ctx context.Context) ([]Game, error) {
	logger := r.logger.With("component", "game_repository", "operation", "get_all_games")
	logger.Debug("Getting all games")

	rows, err := r.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY created_at DESC`)
	if err != nil {
		logger.Error("Failed to query games", "error", err)
		return nil, errors.WrapInternal("failed to list games", err)
	}
	defer rows.Close()

	games := []Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			logger.Error("Failed to scan game row", "error", err)
			return nil, errors.WrapInternal("failed to list games", err)
		}
		games = append(games, *g)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, errors.WrapInternal("failed to list games", err)
	}

	players, err := r.playersByGame(ctx)
	if err != nil {
		logger.Error("Failed to load game players", "error", err)
		return nil, errors.WrapInternal("failed to list games", err)
	}
	for i := range games {
		games[i].Players = players[games[i].ID]
		if games[i].Players == nil {
			games[i].Players = []GamePlayer{}
		}
	}

	logger.Debug("Games retrieved", "count", len(games))
	return games, nil
}

func (r *Repository) GetGameByPublicID(ctx context.Context, publicID uuid.UUID) (*Game, error) {
	logger := r.logger.With("component", "game_repository", "operation", "get_game", "public_id", publicID)
	logger.Debug("Getting game by public ID")

	g, err := scanGame(r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE public_id = $1`, publicID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("game not found with id: %s", publicID)
		}
		logger.Error("Failed to get game", "error", err)
		return nil, errors.WrapInternal("failed to get game", err)
	}

	g.Players, err = r.gamePlayers(ctx, g.ID)
	if err != nil {
		logger.Error("Failed to load game players", "error", err)
		return nil, errors.WrapInternal("failed to get game", err)
	}
	return g, nil
}

func (r *Repository) gamePlayers(ctx context.Context, gameID int) ([]GamePlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT number, name, race, player_id, homeworld_id
		FROM game_players
		WHERE game_id = $1
		ORDER BY number`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []GamePlayer{}
	for rows.Next() {
		var p GamePlayer
		if err := rows.Scan(&p.Number, &p.Name, &p.Race, &p.PlayerID, &p.HomeworldID); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *Repository) playersByGame(ctx context.Context) (map[int][]GamePlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT game_id, number, name, race, player_id, homeworld_id
		FROM game_players
		ORDER BY game_id, number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]GamePlayer)
	for rows.Next() {
		var (
			gameID int
			p      GamePlayer
		)
		if err := rows.Scan(&gameID, &p.Number, &p.Name, &p.Race, &p.PlayerID, &p.HomeworldID); err != nil {
			return nil, err
		}
		out[gameID] = append(out[gameID], p)
	}
	return out, rows.Err()
}

// GetGameState loads the stored universe of a game for one year and checks
// it against the checksum written with it.
func (r *Repository) GetGameState(ctx context.Context, gameID, year int) (*universe.Universe, string, error) {
	logger := r.logger.With("component", "game_repository", "operation", "get_game_state", "game_id", gameID, "year", year)
	logger.Debug("Loading game state")

	var (
		data     []byte
		checksum string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT data, checksum FROM game_states WHERE game_id = $1 AND year = $2`,
		gameID, year).Scan(&data, &checksum)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", errors.NotFoundf("no state for game %d in year %d", gameID, year)
		}
		logger.Error("Failed to load game state", "error", err)
		return nil, "", errors.WrapInternal("failed to load game state", err)
	}

	u, err := decodeState(data, checksum)
	if err != nil {
		logger.Error("Stored game state is unusable", "error", err)
		return nil, "", errors.WrapInternal("failed to load game state", err)
	}

	logger.Debug("Game state loaded", "planets", len(u.Planets))
	return u, checksum, nil
}

func (r *Repository) DeleteGame(ctx context.Context, gameID int) error {
	logger := r.logger.With("component", "game_repository", "operation", "delete_game", "game_id", gameID)
	logger.Info("Deleting game and all related data")

	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		logger.Error("Failed to delete game", "error", err)
		return errors.WrapInternal("failed to delete game", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("Failed to get rows affected", "error", err)
		return errors.WrapInternal("failed to delete game", err)
	}

	if rowsAffected == 0 {
		logger.Warn("Game not found for deletion")
		return errors.NotFoundf("game not found with id: %d", gameID)
	}

	logger.Info("Game deleted successfully")
	return nil
}

// IsGameMember reports whether playerID holds a seat in the game.
func (r *Repository) IsGameMember(ctx context.Context, publicID string, playerID int) (bool, error) {
	id, err := uuid.Parse(publicID)
	if err != nil {
		return false, errors.WrapValidation("invalid game ID format", err)
	}

	var gameID int
	err = r.db.QueryRowContext(ctx, `SELECT id FROM games WHERE public_id = $1`, id).Scan(&gameID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, errors.NotFoundf("game not found with id: %s", publicID)
		}
		return false, errors.WrapInternal("failed to check game membership", err)
	}

	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM game_players WHERE game_id = $1 AND player_id = $2)`,
		gameID, playerID,
	).Scan(&exists)
	if err != nil {
		return false, errors.WrapInternal("failed to check game membership", err)
	}
	return exists, nil
}

// encodeState serializes a universe for the JSONB column. The checksum is
// taken over this canonical encoding.
func encodeState(u *universe.Universe) ([]byte, string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, "", err
	}
	return data, stateChecksum(data), nil
}

// decodeState parses a stored universe. JSONB does not keep the original
// bytes, so the checksum is verified against a re-encoding.
func decodeState(data []byte, checksum string) (*universe.Universe, error) {
	var u universe.Universe
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to decode universe: %w", err)
	}
	_, got, err := encodeState(&u)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode universe: %w", err)
	}
	if got != checksum {
		return nil, fmt.Errorf("checksum mismatch: stored %s, computed %s", checksum, got)
	}
	return &u, nil
}
