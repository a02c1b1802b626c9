package universe

import (
	"math/rand/v2"
)

// Rand is the randomness handle threaded through every generation call.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

const pcgStream = 0x5EED_57A2_5EED_57A2

// NewRand returns a PCG-backed source. PCG output is fixed by its
// algorithm, so a seed reproduces the same universe on any Go release.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^pcgStream))
}
