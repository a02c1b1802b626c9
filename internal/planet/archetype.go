package planet

import (
	"fmt"
)

// Rand is the slice of a random source planet seeding needs.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) Roll(rng Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Archetype carries the defaults newly generated planets are rolled from.
type Archetype struct {
	Concentration             Range `json:"concentration"`
	Gravity                   Range `json:"gravity"`
	Temperature               Range `json:"temperature"`
	Radiation                 Range `json:"radiation"`
	HomeworldMinConcentration int   `json:"homeworld_min_concentration"`
}

var DefaultArchetype = Archetype{
	Concentration:             Range{Min: 1, Max: 100},
	Gravity:                   Range{Min: 0, Max: 100},
	Temperature:               Range{Min: 0, Max: 100},
	Radiation:                 Range{Min: 0, Max: 100},
	HomeworldMinConcentration: 30,
}

// Validate reports the first range, in roll order, outside 0..100.
func (a Archetype) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"concentration", a.Concentration},
		{"gravity", a.Gravity},
		{"temperature", a.Temperature},
		{"radiation", a.Radiation},
	}
	for _, rr := range ranges {
		if rr.r.Min < 0 || rr.r.Max > 100 || rr.r.Min > rr.r.Max {
			return fmt.Errorf("archetype %s range [%d, %d] outside 0..100", rr.name, rr.r.Min, rr.r.Max)
		}
	}
	return nil
}

// Roll fills in the mineral and habitat fields of p. Fields are rolled in a
// fixed order so a seeded source always yields the same planet.
func (a Archetype) Roll(p *Planet, rng Rand) {
	p.Concentration = Minerals{
		Ironium:   a.Concentration.Roll(rng),
		Boranium:  a.Concentration.Roll(rng),
		Germanium: a.Concentration.Roll(rng),
	}
	p.Habitat = Habitat{
		Gravity:     a.Gravity.Roll(rng),
		Temperature: a.Temperature.Roll(rng),
		Radiation:   a.Radiation.Roll(rng),
	}
}
