package universe

import (
	"math"

	"stars-server/internal/spatial"
)

const (
	// Margin keeps planets away from the universe edge.
	Margin = 10
	// Separation is the minimum Manhattan distance between two planets.
	Separation = 13
)

// Boundary is the square [0,0]..[Side,Side].
type Boundary struct {
	Side int `json:"side"`
}

func BoundaryFor(size SizeClass) Boundary {
	return Boundary{Side: size.Side()}
}

func (b Boundary) Corners() [4]spatial.Coordinate {
	return [4]spatial.Coordinate{
		{X: 0, Y: 0},
		{X: b.Side, Y: 0},
		{X: b.Side, Y: b.Side},
		{X: 0, Y: b.Side},
	}
}

// Inset returns the inclusive range planets may occupy on either axis.
func (b Boundary) Inset(margin int) (lo, hi int) {
	return margin, b.Side - margin
}

func (b Boundary) Contains(c spatial.Coordinate, margin int) bool {
	lo, hi := b.Inset(margin)
	return c.X >= lo && c.X <= hi && c.Y >= lo && c.Y <= hi
}

func (b Boundary) Diagonal() float64 {
	return float64(b.Side) * math.Sqrt2
}
