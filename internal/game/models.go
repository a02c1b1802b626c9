package game

import (
	"time"

	"github.com/google/uuid"

	"stars-server/internal/race"
	"stars-server/internal/universe"
)

// StartingYear is the in-game year of the first turn.
const StartingYear = 2400

type GameStatus string

const (
	GameStatusCreating  GameStatus = "creating"
	GameStatusActive    GameStatus = "active"
	GameStatusCompleted GameStatus = "completed"
)

// Settings are the universe parameters a game was generated with. Seed is
// the seed that produced the stored universe.
type Settings struct {
	Size             universe.SizeClass        `json:"size"`
	Density          universe.DensityClass     `json:"density"`
	Clumping         bool                      `json:"clumping"`
	StartingDistance universe.StartingDistance `json:"starting_distance"`
	Seed             uint64                    `json:"seed"`
}

type GamePlayer struct {
	Number      int     `json:"number"`
	Name        string  `json:"name"`
	Race        race.ID `json:"race"`
	PlayerID    *int    `json:"player_id,omitempty"`
	HomeworldID int     `json:"homeworld_id"`
}

type Game struct {
	ID          int          `json:"-"`
	PublicID    uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Status      GameStatus   `json:"status"`
	Year        int          `json:"year"`
	Settings    Settings     `json:"settings"`
	PlanetCount int          `json:"planet_count"`
	Fingerprint string       `json:"fingerprint"`
	Players     []GamePlayer `json:"players"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type PlayerConfig struct {
	Name     string  `json:"name"`
	Race     race.ID `json:"race"`
	PlayerID *int    `json:"player_id,omitempty"`
}

// GameConfig is a game-creation request. Empty settings take the configured
// defaults; a nil Seed lets the server pick one.
type GameConfig struct {
	Name             string         `json:"name"`
	Size             string         `json:"size"`
	Density          string         `json:"density"`
	Clumping         *bool          `json:"clumping"`
	StartingDistance string         `json:"starting_distance"`
	Seed             *uint64        `json:"seed"`
	Players          []PlayerConfig `json:"players"`
}

// GameState is the full universe of a game in one year, with the checksum
// recorded when it was stored.
type GameState struct {
	GameID   uuid.UUID          `json:"game_id"`
	Year     int                `json:"year"`
	Checksum string             `json:"checksum"`
	Universe *universe.Universe `json:"universe"`
}
