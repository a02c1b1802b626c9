package planet

import (
	"stars-server/internal/spatial"
)

// HabitatKind names one of the three environment axes a race cares about.
type HabitatKind string

const (
	HabitatGravity     HabitatKind = "gravity"
	HabitatTemperature HabitatKind = "temperature"
	HabitatRadiation   HabitatKind = "radiation"
)

var HabitatKinds = []HabitatKind{HabitatGravity, HabitatTemperature, HabitatRadiation}

// Habitat values are expressed in clicks, 0 to 100 on every axis.
type Habitat struct {
	Gravity     int `json:"gravity"`
	Temperature int `json:"temperature"`
	Radiation   int `json:"radiation"`
}

func (h Habitat) Get(kind HabitatKind) int {
	switch kind {
	case HabitatGravity:
		return h.Gravity
	case HabitatTemperature:
		return h.Temperature
	case HabitatRadiation:
		return h.Radiation
	default:
		return 0
	}
}

func (h *Habitat) Set(kind HabitatKind, value int) {
	switch kind {
	case HabitatGravity:
		h.Gravity = value
	case HabitatTemperature:
		h.Temperature = value
	case HabitatRadiation:
		h.Radiation = value
	}
}

// Minerals holds mineral concentrations (1-100) for the three minerals.
type Minerals struct {
	Ironium   int `json:"ironium"`
	Boranium  int `json:"boranium"`
	Germanium int `json:"germanium"`
}

func (m Minerals) Total() int {
	return m.Ironium + m.Boranium + m.Germanium
}

// Floor raises every concentration below min up to min.
func (m Minerals) Floor(min int) Minerals {
	return Minerals{
		Ironium:   max(m.Ironium, min),
		Boranium:  max(m.Boranium, min),
		Germanium: max(m.Germanium, min),
	}
}

type Planet struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	Position      spatial.Coordinate `json:"position"`
	Concentration Minerals           `json:"concentration"`
	Habitat       Habitat            `json:"habitat"`
	Homeworld     bool               `json:"homeworld"`
	Owner         *int               `json:"owner,omitempty"`
	Population    int64              `json:"population"`
}

// Summary is the short per-planet view served by the read endpoint.
type Summary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (p Planet) Summary() Summary {
	return Summary{
		ID:   p.ID,
		Name: p.Name,
		X:    p.Position.X,
		Y:    p.Position.Y,
	}
}

func Summaries(planets []Planet) []Summary {
	out := make([]Summary, 0, len(planets))
	for _, p := range planets {
		out = append(out, p.Summary())
	}
	return out
}
