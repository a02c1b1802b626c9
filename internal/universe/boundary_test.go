package universe

import (
	"math"
	"testing"

	"stars-server/internal/spatial"
)

func TestBoundaryCorners(t *testing.T) {
	b := BoundaryFor(SizeSmall)
	want := [4]spatial.Coordinate{
		{X: 0, Y: 0},
		{X: 800, Y: 0},
		{X: 800, Y: 800},
		{X: 0, Y: 800},
	}
	if got := b.Corners(); got != want {
		t.Errorf("Expected corners %v, got %v", want, got)
	}
	if got := b.Diagonal(); math.Abs(got-800*math.Sqrt2) > 1e-9 {
		t.Errorf("Expected diagonal %.3f, got %.3f", 800*math.Sqrt2, got)
	}
}

func TestBoundaryContains(t *testing.T) {
	b := BoundaryFor(SizeTiny)
	tests := []struct {
		c    spatial.Coordinate
		want bool
	}{
		{spatial.Coordinate{X: 10, Y: 10}, true},
		{spatial.Coordinate{X: 390, Y: 390}, true},
		{spatial.Coordinate{X: 200, Y: 200}, true},
		{spatial.Coordinate{X: 9, Y: 200}, false},
		{spatial.Coordinate{X: 200, Y: 391}, false},
		{spatial.Coordinate{X: 0, Y: 0}, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.c, Margin); got != tt.want {
			t.Errorf("Contains(%v): expected %v, got %v", tt.c, tt.want, got)
		}
	}
}
