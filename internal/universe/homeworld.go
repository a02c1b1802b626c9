package universe

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"stars-server/internal/planet"
	"stars-server/internal/race"
)

// StartingDistance controls how far apart homeworlds must be.
type StartingDistance int

const (
	DistanceClose StartingDistance = iota
	DistanceModerate
	DistanceFarther
	DistanceDistant
)

var startingDistanceNames = map[StartingDistance]string{
	DistanceClose:    "close",
	DistanceModerate: "moderate",
	DistanceFarther:  "farther",
	DistanceDistant:  "distant",
}

// startingDistanceFractions are minimum homeworld separations as a fraction
// of the universe diagonal.
var startingDistanceFractions = map[StartingDistance]float64{
	DistanceClose:    0.10,
	DistanceModerate: 0.20,
	DistanceFarther:  0.30,
	DistanceDistant:  0.40,
}

var StartingDistances = []StartingDistance{DistanceClose, DistanceModerate, DistanceFarther, DistanceDistant}

func (d StartingDistance) Valid() bool {
	_, ok := startingDistanceFractions[d]
	return ok
}

func (d StartingDistance) Fraction() float64 {
	return startingDistanceFractions[d]
}

// MinimumSeparation is the Euclidean distance every homeworld pair must keep.
func (d StartingDistance) MinimumSeparation(b Boundary) float64 {
	return d.Fraction() * b.Diagonal()
}

func (d StartingDistance) String() string {
	if name, ok := startingDistanceNames[d]; ok {
		return name
	}
	return fmt.Sprintf("distance(%d)", int(d))
}

func (d StartingDistance) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid starting distance %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *StartingDistance) UnmarshalText(text []byte) error {
	parsed, err := ParseStartingDistance(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func ParseStartingDistance(v string) (StartingDistance, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for d, name := range startingDistanceNames {
		if name == v {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown starting distance %q", v)
}

// Player is a participant to seat. Number is recorded as the homeworld owner.
type Player struct {
	Number int
	Name   string
	Race   *race.Race
}

// AssignHomeworlds picks one planet per player so that every pair of picks is
// at least policy.MinimumSeparation apart, then seats each player on theirs.
// Planets are ranked by total mineral concentration and searched depth first
// in that order, so the first set tried is the greedy walk down the ranking.
// Unsatisfiable is only reported once no set of planets fits.
func AssignHomeworlds(planets []planet.Planet, players []Player, policy StartingDistance, bounds Boundary, arch planet.Archetype) error {
	if len(players) == 0 {
		return failf(ErrInvalidParameters, StageHomeworldsAssigned, "no players to seat")
	}
	if len(planets) < len(players) {
		return failf(ErrHomeworldSeparationUnsatisfiable, StageHomeworldsAssigned,
			"%d players but only %d planets", len(players), len(planets))
	}

	minDist := policy.MinimumSeparation(bounds)
	if len(players) > homeworldPackingLimit(bounds, minDist) {
		return failf(ErrHomeworldSeparationUnsatisfiable, StageHomeworldsAssigned,
			"%d players cannot be %.1f apart in a universe of side %d", len(players), minDist, bounds.Side)
	}

	chosen := searchHomeworlds(planets, rankBySuitability(planets), len(players), minDist)
	if chosen == nil {
		return failf(ErrHomeworldSeparationUnsatisfiable, StageHomeworldsAssigned,
			"cannot seat %d players %.1f apart among %d planets", len(players), minDist, len(planets))
	}

	for i, idx := range chosen {
		seat(&planets[idx], players[i], arch)
	}
	return nil
}

// homeworldPackingLimit bounds how many points can be minDist apart
// (Euclidean) inside the boundary. Discs of radius minDist/2 around them are
// disjoint and lie in the square grown by minDist/2 per side.
func homeworldPackingLimit(bounds Boundary, minDist float64) int {
	if minDist <= 0 {
		return math.MaxInt
	}
	w := float64(bounds.Side) + minDist
	return int(math.Floor(w * w / (math.Pi * minDist * minDist / 4)))
}

// rankBySuitability returns planet indexes, best first, ties by lower id.
func rankBySuitability(planets []planet.Planet) []int {
	ranked := make([]int, len(planets))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		pa, pb := planets[ranked[a]], planets[ranked[b]]
		if ta, tb := pa.Concentration.Total(), pb.Concentration.Total(); ta != tb {
			return ta > tb
		}
		return pa.ID < pb.ID
	})
	return ranked
}

// searchHomeworlds returns want planet indexes, in ranking order, that are
// pairwise at least minDist apart, or nil when there is no such set. Each
// level only considers later-ranked planets far enough from every pick so
// far, and a branch is dropped as soon as too few of them remain.
func searchHomeworlds(planets []planet.Planet, ranked []int, want int, minDist float64) []int {
	chosen := make([]int, 0, want)

	var walk func(candidates []int) bool
	walk = func(candidates []int) bool {
		need := want - len(chosen)
		if need == 0 {
			return true
		}
		for i, idx := range candidates {
			if len(candidates)-i < need {
				return false
			}
			rest := compatible(planets, idx, candidates[i+1:], minDist)
			if len(rest) < need-1 {
				continue
			}
			chosen = append(chosen, idx)
			if walk(rest) {
				return true
			}
			chosen = chosen[:len(chosen)-1]
		}
		return false
	}

	if !walk(ranked) {
		return nil
	}
	return chosen
}

// compatible filters candidates down to those at least minDist from idx.
func compatible(planets []planet.Planet, idx int, candidates []int, minDist float64) []int {
	pos := planets[idx].Position
	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if pos.Distance(planets[c].Position) >= minDist {
			out = append(out, c)
		}
	}
	return out
}

// seat turns p into player's homeworld. Habitat axes the race is not immune
// to take the race's ideal value.
func seat(p *planet.Planet, player Player, arch planet.Archetype) {
	ideal := player.Race.Ideal()
	for _, kind := range planet.HabitatKinds {
		if player.Race.Immune(kind) {
			continue
		}
		p.Habitat.Set(kind, ideal.Get(kind))
	}
	p.Concentration = p.Concentration.Floor(arch.HomeworldMinConcentration)
	p.Population = player.Race.StartingPopulation()
	p.Homeworld = true
	owner := player.Number
	p.Owner = &owner
}
