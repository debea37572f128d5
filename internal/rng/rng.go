// Package rng provides the injectable randomness source used for hit, crit
// and guts rolls, so combat outcomes are reproducible in tests.
package rng

import "math/rand/v2"

// Source is the randomness provider for combat rolls.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// Seeded returns a deterministic Source from a fixed seed.
func Seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Fixed is a Source returning a constant value; used in tests to force a
// roll outcome (0 always succeeds a chance check, 0.999 always fails).
type Fixed float64

func (f Fixed) Float64() float64 { return float64(f) }

// Sequence yields queued values in order and repeats the final one.
type Sequence struct {
	Values []float64
	next   int
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next]
	if s.next < len(s.Values)-1 {
		s.next++
	}
	return v
}
