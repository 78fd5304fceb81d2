// Package rng provides deterministic random streams derived from a single
// world seed. Every generation stage draws from its own named substream, so
// adding or reordering stages never perturbs the output of unrelated ones.
package rng

import (
	"hash/fnv"
	"math/rand"
)

// Stream is a named deterministic random stream.
type Stream struct {
	Name string
	Seed int64
	*rand.Rand
}

// New returns the root stream for the given world seed.
func New(seed uint32) *Stream {
	return &Stream{
		Name: "root",
		Seed: int64(seed),
		Rand: rand.New(rand.NewSource(int64(seed))),
	}
}

// Sub derives a named substream. The derived seed depends only on the parent
// seed and the name, never on how many values were drawn from the parent.
func (s *Stream) Sub(name string) *Stream {
	h := fnv.New64a()
	h.Write([]byte(name))
	seed := s.Seed ^ int64(h.Sum64())
	return &Stream{
		Name: name,
		Seed: seed,
		Rand: rand.New(rand.NewSource(seed)),
	}
}

// InRange returns a uniform value in [min, max).
func (s *Stream) InRange(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// Chance returns true with the given probability.
func (s *Stream) Chance(probability float64) bool {
	if probability >= 1.0 {
		return true
	}
	if probability <= 0 {
		return false
	}
	return s.Float64() < probability
}

// Jitter returns a uniform value in [-amount, amount].
func (s *Stream) Jitter(amount float64) float64 {
	return (s.Float64()*2 - 1) * amount
}
