package algorithm

import (
	"fmt"
	"math"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/random"
)

// SteadyState replaces floor(MortalityRate × size) individuals in place
// each generation, so generations overlap.
type SteadyState[C chromosome.Chromosome[C]] struct {
	Params
	Operators[C]
	MortalityRate float64
}

// Run evolves a copy of initial. Within a generation the j-th replacement
// lands on a uniformly chosen individual that has not been replaced yet,
// and parents are drawn from the population as it stands at that moment.
func (s *SteadyState[C]) Run(initial population.Population[C], rng random.Source) (Result[C], error) {
	if err := s.Params.validate(); err != nil {
		return Result[C]{}, err
	}
	if !(s.MortalityRate >= 0 && s.MortalityRate <= 1) {
		return Result[C]{}, fmt.Errorf("%w: mortality rate %v not in [0, 1]", ErrInvalidParams, s.MortalityRate)
	}
	if err := s.Operators.validate(len(initial)); err != nil {
		return Result[C]{}, err
	}

	l := newLoop(s.Params, &s.Operators)
	pop := population.Clone(initial)
	n := len(pop)
	deaths := int(math.Floor(s.MortalityRate * float64(n)))

	for gen := 0; gen < s.MaxGenerations; gen++ {
		best, done := l.step(pop, gen)
		if done {
			return l.finish(best, gen, DesiredFitness), nil
		}

		// Replaced individuals are moved to the front, so [j, n) holds
		// the ones still alive from this generation.
		for j := 0; j < deaths; j++ {
			pos := j + rng.IntN(n-j)
			pop[j], pop[pos] = pop[pos], pop[j]
			pop[j] = l.offspring(pop, rng)
		}
	}

	best := l.evaluate(pop)
	return l.finish(best, s.MaxGenerations, MaxGenerations), nil
}
