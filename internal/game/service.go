package game

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"stars-server/internal/planet"
	"stars-server/internal/race"
	"stars-server/internal/shared/config"
	"stars-server/internal/shared/errors"
	"stars-server/internal/universe"
)

// Store is the persistence the game service needs.
type Store interface {
	CreateGame(ctx context.Context, g *Game, u *universe.Universe) (*Game, error)
	GetAllGames(ctx context.Context) ([]Game, error)
	GetGameByPublicID(ctx context.Context, publicID uuid.UUID) (*Game, error)
	GetGameState(ctx context.Context, gameID, year int) (*universe.Universe, string, error)
	DeleteGame(ctx context.Context, gameID int) error
}

type Service struct {
	store     Store
	cache     SummaryCache
	generator *universe.Generator
	races     *race.Registry
	defaults  config.UniverseConfig
	newSeed   func() uint64
	logger    *slog.Logger
}

func NewService(
	store Store,
	cache SummaryCache,
	generator *universe.Generator,
	races *race.Registry,
	defaults config.UniverseConfig,
	logger *slog.Logger,
) *Service {
	if cache == nil {
		cache = NoopSummaryCache{}
	}
	return &Service{
		store:     store,
		cache:     cache,
		generator: generator,
		races:     races,
		defaults:  defaults,
		newSeed:   rand.Uint64,
		logger:    logger,
	}
}

// resolve applies configured defaults to cfg and turns it into generator
// parameters. Input problems come back as validation errors.
func (s *Service) resolve(cfg GameConfig) (Settings, []universe.Player, []GamePlayer, error) {
	var settings Settings

	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return strings.TrimSpace(v)
	}

	var err error
	if settings.Size, err = universe.ParseSizeClass(pick(cfg.Size, s.defaults.DefaultSize)); err != nil {
		return settings, nil, nil, errors.WrapValidation("invalid universe size", err)
	}
	if settings.Density, err = universe.ParseDensityClass(pick(cfg.Density, s.defaults.DefaultDensity)); err != nil {
		return settings, nil, nil, errors.WrapValidation("invalid planet density", err)
	}
	if settings.StartingDistance, err = universe.ParseStartingDistance(pick(cfg.StartingDistance, s.defaults.DefaultStartingDistance)); err != nil {
		return settings, nil, nil, errors.WrapValidation("invalid starting distance", err)
	}
	settings.Clumping = s.defaults.DefaultClumping
	if cfg.Clumping != nil {
		settings.Clumping = *cfg.Clumping
	}

	if len(cfg.Players) == 0 {
		return settings, nil, nil, errors.Validation("at least one player is required")
	}
	if len(cfg.Players) > s.defaults.MaxPlayers {
		return settings, nil, nil, errors.Validationf("a game seats at most %d players, got %d", s.defaults.MaxPlayers, len(cfg.Players))
	}

	players := make([]universe.Player, len(cfg.Players))
	seats := make([]GamePlayer, len(cfg.Players))
	for i, pc := range cfg.Players {
		r, err := s.races.Get(pc.Race)
		if err != nil {
			return settings, nil, nil, errors.WrapValidation(fmt.Sprintf("player %d", i+1), err)
		}
		name := strings.TrimSpace(pc.Name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = universe.Player{Number: i + 1, Name: name, Race: r}
		seats[i] = GamePlayer{Number: i + 1, Name: name, Race: r.ID, PlayerID: pc.PlayerID}
	}

	return settings, players, seats, nil
}

// CreateGame generates a universe for cfg and stores it as the game's
// year-2400 state. The store activates the game in the same transaction.
// Without a fixed seed, generation is retried with fresh seeds up to the
// configured number of attempts.
func (s *Service) CreateGame(ctx context.Context, cfg GameConfig) (*Game, error) {
	logger := s.logger.With("component", "game_service", "operation", "create_game", "name", cfg.Name)
	logger.InfoContext(ctx, "Creating new game")

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return nil, errors.Validation("game name is required")
	}

	settings, players, seats, err := s.resolve(cfg)
	if err != nil {
		logger.DebugContext(ctx, "Rejected game configuration", "error", err)
		return nil, err
	}

	params := universe.Params{
		Size:             settings.Size,
		Density:          settings.Density,
		Clumping:         settings.Clumping,
		StartingDistance: settings.StartingDistance,
		Players:          players,
	}

	attempts := s.defaults.GenerationAttempts
	if cfg.Seed != nil || attempts < 1 {
		attempts = 1
	}

	var u *universe.Universe
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var seed uint64
		if cfg.Seed != nil {
			seed = *cfg.Seed
		} else {
			seed = s.newSeed()
		}

		u, err = s.generator.Generate(params, universe.NewRand(seed))
		if err == nil {
			settings.Seed = seed
			break
		}
		if stderrors.Is(err, universe.ErrInvalidParameters) {
			return nil, errors.WrapValidation("invalid game parameters", err)
		}
		logger.WarnContext(ctx, "Universe generation attempt failed",
			"attempt", attempt,
			"attempts", attempts,
			"seed", seed,
			"error", err)
	}
	if u == nil {
		return nil, errors.WrapUnprocessable("cannot create game with these parameters", err)
	}

	fingerprint, err := u.Fingerprint()
	if err != nil {
		return nil, errors.WrapInternal("failed to fingerprint universe", err)
	}

	for _, hw := range u.Homeworlds() {
		if hw.Owner != nil && *hw.Owner >= 1 && *hw.Owner <= len(seats) {
			seats[*hw.Owner-1].HomeworldID = hw.ID
		}
	}

	g := &Game{
		PublicID:    uuid.New(),
		Name:        name,
		Status:      GameStatusCreating,
		Year:        StartingYear,
		Settings:    settings,
		PlanetCount: len(u.Planets),
		Fingerprint: fingerprint,
		Players:     seats,
	}

	created, err := s.store.CreateGame(ctx, g, u)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to store game", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Game created and activated successfully",
		"game_id", created.PublicID,
		"seed", settings.Seed,
		"planets", created.PlanetCount,
		"fingerprint", fingerprint)

	return created, nil
}

func (s *Service) ListGames(ctx context.Context) ([]Game, error) {
	return s.store.GetAllGames(ctx)
}

func (s *Service) GetGame(ctx context.Context, publicID string) (*Game, error) {
	id, err := uuid.Parse(publicID)
	if err != nil {
		return nil, errors.WrapValidation("invalid game ID format", err)
	}
	return s.store.GetGameByPublicID(ctx, id)
}

// GetGameState returns the full universe of the game's current year.
func (s *Service) GetGameState(ctx context.Context, publicID string) (*GameState, error) {
	g, err := s.GetGame(ctx, publicID)
	if err != nil {
		return nil, err
	}

	u, checksum, err := s.store.GetGameState(ctx, g.ID, g.Year)
	if err != nil {
		return nil, err
	}

	return &GameState{
		GameID:   g.PublicID,
		Year:     g.Year,
		Checksum: checksum,
		Universe: u,
	}, nil
}

// GetPlanetSummaries returns id, name and position of every planet in the
// game's current year. Results are cached; cache failures only cost a reload.
func (s *Service) GetPlanetSummaries(ctx context.Context, publicID string) ([]planet.Summary, error) {
	logger := s.logger.With("component", "game_service", "operation", "planet_summaries", "game_id", publicID)

	g, err := s.GetGame(ctx, publicID)
	if err != nil {
		return nil, err
	}

	key := summaryKey(g.PublicID.String(), g.Year)
	summaries, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "Summary cache read failed", "error", err)
	}
	if ok {
		return summaries, nil
	}

	u, _, err := s.store.GetGameState(ctx, g.ID, g.Year)
	if err != nil {
		return nil, err
	}

	summaries = planet.Summaries(u.Planets)
	if err := s.cache.Set(ctx, key, summaries); err != nil {
		logger.WarnContext(ctx, "Summary cache write failed", "error", err)
	}

	logger.DebugContext(ctx, "Planet summaries loaded", "count", len(summaries))
	return summaries, nil
}

func (s *Service) DeleteGame(ctx context.Context, publicID string) error {
	logger := s.logger.With("component", "game_service", "operation", "delete_game", "game_id", publicID)
	logger.InfoContext(ctx, "Deleting game and all related data")

	g, err := s.GetGame(ctx, publicID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteGame(ctx, g.ID); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, summaryKey(g.PublicID.String(), g.Year)); err != nil {
		logger.WarnContext(ctx, "Failed to evict cached summaries", "error", err)
	}
	return nil
}
