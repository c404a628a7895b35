package system

import "math/rand"

// RNG is the only source of randomness in a round. Calls are counted so a
// replay can check it consumed the stream the same way.
type RNG struct {
	r     *rand.Rand
	seed  int64
	calls uint64
}

// NewRNG seeds a generator. Seed 0 is mapped to 1.
func NewRNG(seed int64) *RNG {
	if seed == 0 {
		seed = 1
	}
	return &RNG{r: rand.New(rand.NewSource(seed)), seed: seed}
}

func (g *RNG) Seed() int64   { return g.seed }
func (g *RNG) Calls() uint64 { return g.calls }

// Float64 returns a value in [0, 1).
func (g *RNG) Float64() float64 {
	g.calls++
	return g.r.Float64()
}

// Range returns a value uniform in [lo, hi).
func (g *RNG) Range(lo, hi float64) float64 {
	return lo + g.Float64()*(hi-lo)
}
