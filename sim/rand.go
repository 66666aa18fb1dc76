package sim

import "math/rand/v2"

// Rand is the source spawn positions and patrol widths are drawn from.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded PCG source; equal seeds give equal sessions.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
