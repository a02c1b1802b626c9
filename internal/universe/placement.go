package universe

import (
	"math"
	"sort"

	"stars-server/internal/spatial"
)

const (
	// MaxPlacementAttempts bounds rejection sampling for a single planet.
	MaxPlacementAttempts = 1000
	// fallbackGridStep is the spacing of the grid scanned once sampling gives up.
	fallbackGridStep = 3
)

// Placement describes one run of the placement engine.
type Placement struct {
	Count      int
	Boundary   Boundary
	Margin     int
	Separation int
}

// PlacementResult carries the coordinates plus counters for logging.
type PlacementResult struct {
	Coordinates []spatial.Coordinate
	Rejections  int
	Fallbacks   int
}

// Place scatters Count coordinates inside the inset region so that every pair
// is at least Separation apart (Manhattan). Candidates are sampled uniformly;
// after MaxPlacementAttempts rejections for one planet a coarse grid is
// scanned for the free point nearest the last candidate. The result is
// sorted by ascending x, then y.
func Place(p Placement, rng Rand) (*PlacementResult, error) {
	if p.Count < 0 {
		return nil, failf(ErrInvalidParameters, StagePlaced, "negative planet count %d", p.Count)
	}
	if p.Separation < 1 {
		return nil, failf(ErrInvalidParameters, StagePlaced, "separation must be positive, got %d", p.Separation)
	}

	result := &PlacementResult{Coordinates: make([]spatial.Coordinate, 0, p.Count)}
	if p.Count == 0 {
		return result, nil
	}

	lo, hi := p.Boundary.Inset(p.Margin)
	if hi < lo {
		return nil, failf(ErrDensityTooHighForBoundary, StagePlaced,
			"margin %d leaves no room in a universe of side %d", p.Margin, p.Boundary.Side)
	}

	if limit := PackingLimit(hi-lo, p.Separation); p.Count > limit {
		return nil, failf(ErrDensityTooHighForBoundary, StagePlaced,
			"%d planets requested but at most %d fit with separation %d in side %d",
			p.Count, limit, p.Separation, p.Boundary.Side)
	}

	span := hi - lo + 1
	index := spatial.NewIndex(p.Separation)

	for i := 0; i < p.Count; i++ {
		var candidate spatial.Coordinate
		accepted := false

		for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
			candidate = spatial.Coordinate{X: lo + rng.IntN(span), Y: lo + rng.IntN(span)}
			if index.Free(candidate, -1) {
				accepted = true
				break
			}
			result.Rejections++
		}

		if !accepted {
			result.Fallbacks++
			candidate, accepted = nearestFreeGridPoint(index, lo, hi, candidate)
			if !accepted {
				return nil, failf(ErrDensityTooHighForBoundary, StagePlaced,
					"placed %d of %d planets before the region filled up", i, p.Count)
			}
		}

		index.Insert(i, candidate)
		result.Coordinates = append(result.Coordinates, candidate)
	}

	SortCoordinates(result.Coordinates)
	return result, nil
}

// PackingLimit is an upper bound on how many points with pairwise Manhattan
// distance >= separation fit in a square of the given width. Open L1 balls of
// radius separation/2 around each point are disjoint, have area
// separation²/2, and all lie in the square grown by separation/2 per side.
func PackingLimit(width, separation int) int {
	w := float64(width + separation)
	d := float64(separation)
	return int(math.Floor(2 * w * w / (d * d)))
}

func nearestFreeGridPoint(index *spatial.Index, lo, hi int, target spatial.Coordinate) (spatial.Coordinate, bool) {
	var best spatial.Coordinate
	bestDist := -1

	for y := lo; y <= hi; y += fallbackGridStep {
		for x := lo; x <= hi; x += fallbackGridStep {
			c := spatial.Coordinate{X: x, Y: y}
			d := c.Manhattan(target)
			if bestDist >= 0 && d >= bestDist {
				continue
			}
			if !index.Free(c, -1) {
				continue
			}
			best, bestDist = c, d
		}
	}

	return best, bestDist >= 0
}

func SortCoordinates(coords []spatial.Coordinate) {
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
}
