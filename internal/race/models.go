package race

import (
	"slices"

	"stars-server/internal/planet"
)

type ID string

// Trait codes that change homeworld setup.
const (
	TraitLowStartingPopulation = "LSP"
)

const (
	baseStartingPopulation = 25000
	lowStartingPopPercent  = 70
	populationGranularity  = 100
)

// HabitatRange is the inclusive click range a race can live in on one axis.
type HabitatRange struct {
	Min    int  `yaml:"min" json:"min"`
	Max    int  `yaml:"max" json:"max"`
	Immune bool `yaml:"immune" json:"immune"`
}

func (h HabitatRange) Midpoint() int {
	return (h.Min + h.Max) / 2
}

type Race struct {
	ID           ID           `yaml:"id" json:"id"`
	Name         string       `yaml:"name" json:"name"`
	PluralName   string       `yaml:"plural_name" json:"plural_name"`
	PrimaryTrait string       `yaml:"primary_trait" json:"primary_trait"`
	LesserTraits []string     `yaml:"lesser_traits" json:"lesser_traits"`
	GrowthRate   int          `yaml:"growth_rate" json:"growth_rate"`
	Gravity      HabitatRange `yaml:"gravity" json:"gravity"`
	Temperature  HabitatRange `yaml:"temperature" json:"temperature"`
	Radiation    HabitatRange `yaml:"radiation" json:"radiation"`
}

func (r *Race) Range(kind planet.HabitatKind) HabitatRange {
	switch kind {
	case planet.HabitatGravity:
		return r.Gravity
	case planet.HabitatTemperature:
		return r.Temperature
	case planet.HabitatRadiation:
		return r.Radiation
	default:
		return HabitatRange{Immune: true}
	}
}

func (r *Race) Immune(kind planet.HabitatKind) bool {
	return r.Range(kind).Immune
}

// Ideal is the habitat at the middle of every tolerance range. Immune axes
// sit at the center of the scale.
func (r *Race) Ideal() planet.Habitat {
	var h planet.Habitat
	for _, kind := range planet.HabitatKinds {
		rng := r.Range(kind)
		if rng.Immune {
			h.Set(kind, 50)
			continue
		}
		h.Set(kind, rng.Midpoint())
	}
	return h
}

func (r *Race) HasTrait(code string) bool {
	return slices.Contains(r.LesserTraits, code)
}

// StartingPopulation is the colonist count placed on the race's homeworld.
func (r *Race) StartingPopulation() int64 {
	pop := int64(baseStartingPopulation)
	if r.HasTrait(TraitLowStartingPopulation) {
		pop = pop * lowStartingPopPercent / 100
	}
	return pop / populationGranularity * populationGranularity
}
