// Package rng provides the single seedable random stream the simulation
// draws from. Moves, the relaxer's initial placement, and polydisperse
// radius generation all share one stream so that a run is reproducible
// end to end from its seed.
package rng

import "math/rand"

// Stream is a seedable source of uniform deviates. The acceptance
// trajectory of a run depends only on the sequence this produces for a
// given seed, never on wall-clock time or goroutine scheduling.
type Stream struct {
	r *rand.Rand
}

// New creates a Stream seeded with seed.
func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// Reseed resets the stream as if it had just been constructed with seed.
func (s *Stream) Reseed(seed int64) {
	s.r = rand.New(rand.NewSource(seed))
}

// Uniform01 draws from the half-open interval [0, 1).
func (s *Stream) Uniform01() float64 {
	return s.r.Float64()
}

// UniformInt draws an integer from the half-open interval [0, n).
func (s *Stream) UniformInt(n int) int {
	return s.r.Intn(n)
}

// Normal draws a standard-normal deviate, used only by polydisperse radius
// generation.
func (s *Stream) Normal() float64 {
	return s.r.NormFloat64()
}
