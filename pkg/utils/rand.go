package utils

import (
	"math"
	"math/rand"
	"time"
)

// RandSource is a seeded random number generator used by the synthetic
// fixture generator. A fixed seed reproduces the exact same data set.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a new random source with the given seed
func NewRandSource(seed int64) *RandSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a random float64 in [0.0, 1.0)
func (r *RandSource) Float64() float64 {
	return r.rng.Float64()
}

// NormFloat64 returns a normally distributed random number with mean and stddev
func (r *RandSource) NormFloat64(mean, stddev float64) float64 {
	return r.rng.NormFloat64()*stddev + mean
}

// UniformFloat64 returns a uniformly distributed random number in [min, max)
func (r *RandSource) UniformFloat64(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// PoissonInt returns a Poisson-distributed random integer with rate lambda
func (r *RandSource) PoissonInt(lambda float64) int {
	if lambda <= 0 {
		return 0
	}

	// Knuth's algorithm
	L := math.Exp(-lambda)
	k := 0
	p := 1.0

	for p > L {
		k++
		p *= r.rng.Float64()
	}

	return k - 1
}
