package race

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed races.yaml
var catalogYAML []byte

var ErrUnknownRace = errors.New("unknown race")

type catalog struct {
	Races []Race `yaml:"races"`
}

// Registry is a read-only set of races indexed by ID.
type Registry struct {
	byID  map[ID]*Race
	order []ID
}

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// Default returns the registry built from the embedded race catalog.
func Default() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = Parse(catalogYAML)
		if defaultRegistryErr == nil {
			slog.With("component", "race_registry").Debug("Race catalog loaded", "count", len(defaultRegistry.order))
		}
	})
	return defaultRegistry, defaultRegistryErr
}

// MustDefault is Default for callers that cannot proceed without the catalog.
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a registry from a YAML catalog document.
func Parse(data []byte) (*Registry, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse race catalog: %w", err)
	}
	return NewRegistry(c.Races)
}

func NewRegistry(races []Race) (*Registry, error) {
	reg := &Registry{byID: make(map[ID]*Race, len(races))}
	for i := range races {
		r := races[i]
		if err := validate(&r); err != nil {
			return nil, err
		}
		if _, dup := reg.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate race id %q", r.ID)
		}
		reg.byID[r.ID] = &r
		reg.order = append(reg.order, r.ID)
	}
	sort.Slice(reg.order, func(i, j int) bool {
		return reg.byID[reg.order[i]].Name < reg.byID[reg.order[j]].Name
	})
	return reg, nil
}

func validate(r *Race) error {
	if r.ID == "" {
		return fmt.Errorf("race %q has no id", r.Name)
	}
	axes := []struct {
		name string
		h    HabitatRange
	}{
		{"gravity", r.Gravity},
		{"temperature", r.Temperature},
		{"radiation", r.Radiation},
	}
	for _, axis := range axes {
		h := axis.h
		if h.Immune {
			continue
		}
		if h.Min < 0 || h.Max > 100 || h.Min > h.Max {
			return fmt.Errorf("race %q has invalid %s range [%d, %d]", r.ID, axis.name, h.Min, h.Max)
		}
	}
	return nil
}

func (reg *Registry) Get(id ID) (*Race, error) {
	r, ok := reg.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRace, id)
	}
	return r, nil
}

// All returns the races ordered by name. The returned values are copies.
func (reg *Registry) All() []Race {
	out := make([]Race, 0, len(reg.order))
	for _, id := range reg.order {
		out = append(out, *reg.byID[id])
	}
	return out
}

func (reg *Registry) Len() int {
	return len(reg.order)
}
