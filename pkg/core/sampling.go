package core

import "math/rand"

// Sampler provides random sampling for particle emission
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	In(lo, hi float64) float64
}

// StreamFactory derives an independent random stream for a particle index.
// The same (seed, index) pair must always produce an identical stream so
// emission stays reproducible no matter how work is split across workers.
type StreamFactory interface {
	Stream(seed int64, index int) Sampler
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// In returns a random float64 in [lo, hi)
func (r *RandomSampler) In(lo, hi float64) float64 {
	return lo + (hi-lo)*r.random.Float64()
}

// SeededStreamFactory derives streams by seeding a generator with seed+index,
// one generator per particle
type SeededStreamFactory struct{}

// Stream returns the sampler for the given seed and particle index
func (SeededStreamFactory) Stream(seed int64, index int) Sampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed + int64(index))))
}
