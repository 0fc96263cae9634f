package population

import (
	"errors"
	"fmt"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/random"
)

// ErrInvalidSize is returned when a population would hold no individuals.
var ErrInvalidSize = errors.New("invalid population size")

// RealInit produces one real gene.
type RealInit func(rng random.Source) float64

// BitInit produces one bit.
type BitInit func(rng random.Source) bool

// Normal draws genes from the standard normal distribution.
func Normal(rng random.Source) float64 { return rng.Normal(0, 1) }

// Coin draws bits with a fair coin flip.
func Coin(rng random.Source) bool { return rng.Boolean() }

// NewReal clones template size times and sets every gene of every clone
// with one call to init (Normal when nil). Bounded templates clamp the
// drawn values.
func NewReal[C chromosome.Real[C]](template C, size int, init RealInit, rng random.Source) (Population[C], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if init == nil {
		init = Normal
	}
	pop := make(Population[C], size)
	for i := range pop {
		c := template.Clone()
		c.Scores().Reset()
		for g := 0; g < c.Len(); g++ {
			c.SetFloat(g, init(rng))
		}
		pop[i] = c
	}
	return pop, nil
}

// NewBitwise clones template size times and sets every raw bit with one
// call to init (Coin when nil).
func NewBitwise[C chromosome.Bitwise[C]](template C, size int, init BitInit, rng random.Source) (Population[C], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if init == nil {
		init = Coin
	}
	pop := make(Population[C], size)
	for i := range pop {
		c := template.Clone()
		c.Scores().Reset()
		for b := 0; b < c.Positions(); b++ {
			c.SetBit(b, init(rng))
		}
		pop[i] = c
	}
	return pop, nil
}
