package spatial

import (
	"math"
)

// Coordinate is a universe-local grid position. Both axes are non-negative.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinate) Manhattan(o Coordinate) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

func (c Coordinate) Distance(o Coordinate) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Less orders coordinates by x, then y.
func (c Coordinate) Less(o Coordinate) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
