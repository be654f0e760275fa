package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing
type Sampler interface {
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; give each worker its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded from seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// SampleStandardNormal draws one value from N(0, 1) using the Box-Muller transform.
func SampleStandardNormal(sampler Sampler) float64 {
	theta := 2 * math.Pi * sampler.Get1D()
	// 1-u keeps the log argument in (0, 1]
	rho := math.Sqrt(-2 * math.Log(1-sampler.Get1D()))
	return rho * math.Cos(theta)
}

// RandomDirection returns an approximately uniform unit direction built from
// three independent normal draws.
func RandomDirection(sampler Sampler) Vec3 {
	x := SampleStandardNormal(sampler)
	y := SampleStandardNormal(sampler)
	z := SampleStandardNormal(sampler)
	return NewVec3(x, y, z).Normalize()
}
