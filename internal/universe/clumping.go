package universe

import (
	"math"
	"sort"

	"stars-server/internal/planet"
	"stars-server/internal/spatial"
)

const (
	ClumpIterations = 3
	ClumpNeighbors  = 4
	// ClumpStep is the fraction of the distance to the neighbour centroid a
	// planet moves per iteration.
	ClumpStep = 0.25
)

type ClumpStats struct {
	Moved    int
	Rejected int
}

// Clump nudges each planet, in slice order, toward the centroid of its
// nearest neighbours. A move that leaves the inset region or comes closer
// than separation to any other planet is dropped and the planet stays put.
func Clump(planets []planet.Planet, bounds Boundary, margin, separation int) ClumpStats {
	var stats ClumpStats
	if len(planets) < 2 {
		return stats
	}

	k := min(ClumpNeighbors, len(planets)-1)
	index := spatial.NewIndex(separation)
	for i := range planets {
		index.Insert(i, planets[i].Position)
	}

	for iter := 0; iter < ClumpIterations; iter++ {
		for i := range planets {
			from := planets[i].Position
			cx, cy := neighbourCentroid(planets, i, k)

			to := spatial.Coordinate{
				X: from.X + int(math.Round((cx-float64(from.X))*ClumpStep)),
				Y: from.Y + int(math.Round((cy-float64(from.Y))*ClumpStep)),
			}
			if to == from {
				continue
			}

			if !bounds.Contains(to, margin) || !index.Free(to, i) {
				stats.Rejected++
				continue
			}

			index.Move(i, from, to)
			planets[i].Position = to
			stats.Moved++
		}
	}

	return stats
}

type neighbour struct {
	idx  int
	dist int
}

// neighbourCentroid averages the positions of the k planets closest to
// planets[i]. Ties go to the lower slice index.
func neighbourCentroid(planets []planet.Planet, i, k int) (float64, float64) {
	origin := planets[i].Position
	nearest := make([]neighbour, 0, k+1)

	for j := range planets {
		if j == i {
			continue
		}
		dx := planets[j].Position.X - origin.X
		dy := planets[j].Position.Y - origin.Y
		n := neighbour{idx: j, dist: dx*dx + dy*dy}

		if len(nearest) == k && !closer(n, nearest[k-1]) {
			continue
		}
		pos := sort.Search(len(nearest), func(a int) bool {
			return closer(n, nearest[a])
		})
		nearest = append(nearest, neighbour{})
		copy(nearest[pos+1:], nearest[pos:])
		nearest[pos] = n
		if len(nearest) > k {
			nearest = nearest[:k]
		}
	}

	var sx, sy float64
	for _, n := range nearest {
		sx += float64(planets[n.idx].Position.X)
		sy += float64(planets[n.idx].Position.Y)
	}
	return sx / float64(len(nearest)), sy / float64(len(nearest))
}

func closer(a, b neighbour) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.idx < b.idx
}
