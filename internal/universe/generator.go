package universe

import (
	"log/slog"
	"sort"

	"stars-server/internal/planet"
	"stars-server/internal/spatial"
)

// MaxPlayers is the largest number of players a universe can seat.
const MaxPlayers = 16

// Params are the game-setup inputs of one generation run.
type Params struct {
	Size             SizeClass
	Density          DensityClass
	Clumping         bool
	StartingDistance StartingDistance
	Players          []Player
}

// Validate rejects malformed parameters before any sampling happens.
func (p Params) Validate() error {
	if !p.Size.Valid() {
		return failf(ErrInvalidParameters, StageInit, "unknown size class %d", int(p.Size))
	}
	if !p.Density.Valid() {
		return failf(ErrInvalidParameters, StageInit, "unknown density class %d", int(p.Density))
	}
	if !p.StartingDistance.Valid() {
		return failf(ErrInvalidParameters, StageInit, "unknown starting distance %d", int(p.StartingDistance))
	}
	if len(p.Players) == 0 {
		return failf(ErrInvalidParameters, StageInit, "at least one player is required")
	}
	if len(p.Players) > MaxPlayers {
		return failf(ErrInvalidParameters, StageInit, "%d players exceeds the maximum of %d", len(p.Players), MaxPlayers)
	}

	seen := make(map[int]bool, len(p.Players))
	for i, pl := range p.Players {
		if pl.Race == nil {
			return failf(ErrInvalidParameters, StageInit, "player %d has no race", i)
		}
		if seen[pl.Number] {
			return failf(ErrInvalidParameters, StageInit, "duplicate player number %d", pl.Number)
		}
		seen[pl.Number] = true
	}
	return nil
}

// Generator runs the generation pipeline. It holds only read-only tables and
// is safe for concurrent use; all mutable state lives in one Generate call.
type Generator struct {
	densities DensityTable
	archetype planet.Archetype
	logger    *slog.Logger
}

func NewGenerator(densities DensityTable, archetype planet.Archetype, logger *slog.Logger) *Generator {
	return &Generator{
		densities: densities,
		archetype: archetype,
		logger:    logger,
	}
}

// Generate builds a universe for params, drawing every random number from
// rng. The same params and an identically seeded rng give the same universe.
// On failure the error is a *GenerationError and no universe is returned.
func (g *Generator) Generate(params Params, rng Rand) (*Universe, error) {
	logger := g.logger.With(
		"component", "universe_generator",
		"size", params.Size,
		"density", params.Density,
		"clumping", params.Clumping,
		"starting_distance", params.StartingDistance,
		"players", len(params.Players),
	)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := g.archetype.Validate(); err != nil {
		return nil, failf(ErrInvalidParameters, StageInit, "%v", err)
	}

	bounds := BoundaryFor(params.Size)
	count, ok := g.densities.TargetPlanetCount(params.Size, params.Density)
	if !ok {
		return nil, failf(ErrInvalidParameters, StageBoundaryComputed,
			"density table has no entry for %s/%s", params.Size, params.Density)
	}
	logger.Debug("Boundary computed", "side", bounds.Side, "target_planets", count)

	placed, err := Place(Placement{
		Count:      count,
		Boundary:   bounds,
		Margin:     Margin,
		Separation: Separation,
	}, rng)
	if err != nil {
		logger.Debug("Placement failed", "error", err)
		return nil, err
	}
	logger.Debug("Planets placed",
		"count", len(placed.Coordinates),
		"rejections", placed.Rejections,
		"fallbacks", placed.Fallbacks)

	planets := g.seedPlanets(placed.Coordinates, rng)

	if params.Clumping {
		stats := Clump(planets, bounds, Margin, Separation)
		renumber(planets)
		logger.Debug("Clumping applied", "moved", stats.Moved, "rejected", stats.Rejected)
	}

	if err := AssignHomeworlds(planets, params.Players, params.StartingDistance, bounds, g.archetype); err != nil {
		logger.Debug("Homeworld assignment failed", "error", err)
		return nil, err
	}
	logger.Debug("Homeworlds assigned")

	u := Assemble(bounds, planets)
	logger.Info("Universe generated", "planets", len(u.Planets))
	return u, nil
}

// seedPlanets turns sorted coordinates into planets numbered from 1.
func (g *Generator) seedPlanets(coords []spatial.Coordinate, rng Rand) []planet.Planet {
	names := planet.Names(rng, len(coords))
	planets := make([]planet.Planet, len(coords))
	for i, c := range coords {
		planets[i] = planet.Planet{
			ID:       i + 1,
			Name:     names[i],
			Position: c,
		}
		g.archetype.Roll(&planets[i], rng)
	}
	return planets
}

// renumber restores ascending-x order after planets have moved and assigns
// ids 1..n in that order.
func renumber(planets []planet.Planet) {
	sort.SliceStable(planets, func(i, j int) bool {
		return planets[i].Position.Less(planets[j].Position)
	})
	for i := range planets {
		planets[i].ID = i + 1
	}
}
