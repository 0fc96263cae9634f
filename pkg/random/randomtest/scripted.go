// Package randomtest provides a random.Source that replays scripted draws.
package randomtest

import "github.com/wildfunctions/evolve/pkg/random"

// Scripted replays queued draws in order. Uniform queues hold unit values
// that are scaled into the requested range; Normal queues hold standard
// normal values that are scaled by mean and stddev. Once a queue is empty
// the draw comes from Fallback, or panics when Fallback is nil.
type Scripted struct {
	Uniforms []float64
	Normals  []float64
	Booleans []bool
	Ints     []int
	Fallback random.Source
}

var _ random.Source = (*Scripted)(nil)

func (s *Scripted) Uniform(low, high float64) float64 {
	if len(s.Uniforms) == 0 {
		return s.fallback("Uniform").Uniform(low, high)
	}
	u := s.Uniforms[0]
	s.Uniforms = s.Uniforms[1:]
	if high < low {
		low, high = high, low
	}
	return low + u*(high-low)
}

func (s *Scripted) Normal(mean, stddev float64) float64 {
	if len(s.Normals) == 0 {
		return s.fallback("Normal").Normal(mean, stddev)
	}
	z := s.Normals[0]
	s.Normals = s.Normals[1:]
	return mean + stddev*z
}

func (s *Scripted) Boolean() bool {
	if len(s.Booleans) == 0 {
		return s.fallback("Boolean").Boolean()
	}
	b := s.Booleans[0]
	s.Booleans = s.Booleans[1:]
	return b
}

func (s *Scripted) IntN(n int) int {
	if len(s.Ints) == 0 {
		return s.fallback("IntN").IntN(n)
	}
	i := s.Ints[0]
	s.Ints = s.Ints[1:]
	if i < 0 || i >= n {
		panic("randomtest: scripted IntN value out of range")
	}
	return i
}

func (s *Scripted) fallback(draw string) random.Source {
	if s.Fallback == nil {
		panic("randomtest: no scripted " + draw + " draws left")
	}
	return s.Fallback
}
