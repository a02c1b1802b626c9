package universe

import (
	"fmt"
	"math"
	"strings"
)

type SizeClass int

const (
	SizeTiny SizeClass = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
)

var sizeNames = map[SizeClass]string{
	SizeTiny:   "tiny",
	SizeSmall:  "small",
	SizeMedium: "medium",
	SizeLarge:  "large",
	SizeHuge:   "huge",
}

var sizeSides = map[SizeClass]int{
	SizeTiny:   400,
	SizeSmall:  800,
	SizeMedium: 1200,
	SizeLarge:  1600,
	SizeHuge:   2000,
}

var SizeClasses = []SizeClass{SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeHuge}

func (s SizeClass) Valid() bool {
	_, ok := sizeSides[s]
	return ok
}

// Side is the edge length of the square universe in grid units.
func (s SizeClass) Side() int {
	return sizeSides[s]
}

func (s SizeClass) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("size(%d)", int(s))
}

func (s SizeClass) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid size class %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *SizeClass) UnmarshalText(text []byte) error {
	parsed, err := ParseSizeClass(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseSizeClass(v string) (SizeClass, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for s, name := range sizeNames {
		if name == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown universe size %q", v)
}

type DensityClass int

const (
	DensitySparse DensityClass = iota
	DensityNormal
	DensityDense
	DensityPacked
)

var densityNames = map[DensityClass]string{
	DensitySparse: "sparse",
	DensityNormal: "normal",
	DensityDense:  "dense",
	DensityPacked: "packed",
}

var DensityClasses = []DensityClass{DensitySparse, DensityNormal, DensityDense, DensityPacked}

func (d DensityClass) Valid() bool {
	_, ok := densityNames[d]
	return ok
}

func (d DensityClass) String() string {
	if name, ok := densityNames[d]; ok {
		return name
	}
	return fmt.Sprintf("density(%d)", int(d))
}

func (d DensityClass) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid density class %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *DensityClass) UnmarshalText(text []byte) error {
	parsed, err := ParseDensityClass(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func ParseDensityClass(v string) (DensityClass, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for d, name := range densityNames {
		if name == v {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown planet density %q", v)
}

// SectorArea is the area of the 100x100 unit density measurement cell.
const SectorArea = 100 * 100

type DensityKey struct {
	Size    SizeClass
	Density DensityClass
}

// DensityTable maps every (size, density) pair to planets per sector.
type DensityTable map[DensityKey]float64

// DefaultDensities gives 1.5/2/2.5/3 planets per sector. The two densest Huge
// cells are trimmed so a universe never exceeds 999 planets.
var DefaultDensities = DensityTable{
	{SizeTiny, DensitySparse}:   1.5,
	{SizeTiny, DensityNormal}:   2.0,
	{SizeTiny, DensityDense}:    2.5,
	{SizeTiny, DensityPacked}:   3.0,
	{SizeSmall, DensitySparse}:  1.5,
	{SizeSmall, DensityNormal}:  2.0,
	{SizeSmall, DensityDense}:   2.5,
	{SizeSmall, DensityPacked}:  3.0,
	{SizeMedium, DensitySparse}: 1.5,
	{SizeMedium, DensityNormal}: 2.0,
	{SizeMedium, DensityDense}:  2.5,
	{SizeMedium, DensityPacked}: 3.0,
	{SizeLarge, DensitySparse}:  1.5,
	{SizeLarge, DensityNormal}:  2.0,
	{SizeLarge, DensityDense}:   2.5,
	{SizeLarge, DensityPacked}:  3.0,
	{SizeHuge, DensitySparse}:   1.5,
	{SizeHuge, DensityNormal}:   2.0,
	{SizeHuge, DensityDense}:    2.45,
	{SizeHuge, DensityPacked}:   2.495,
}

// Validate reports the first missing or non-positive cell.
func (t DensityTable) Validate() error {
	for _, s := range SizeClasses {
		for _, d := range DensityClasses {
			v, ok := t[DensityKey{s, d}]
			if !ok {
				return fmt.Errorf("density table has no value for %s/%s", s, d)
			}
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("density table value for %s/%s must be positive, got %v", s, d, v)
			}
		}
	}
	return nil
}

func (t DensityTable) PlanetsPerSector(size SizeClass, density DensityClass) (float64, bool) {
	v, ok := t[DensityKey{size, density}]
	return v, ok
}

// TargetPlanetCount is round_half_up(density * side² / SectorArea).
func (t DensityTable) TargetPlanetCount(size SizeClass, density DensityClass) (int, bool) {
	v, ok := t.PlanetsPerSector(size, density)
	if !ok {
		return 0, false
	}
	side := float64(size.Side())
	return roundHalfUp(v * side * side / SectorArea), true
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
