package algorithm

import (
	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/random"
)

// Generational replaces the whole population every generation. With
// Elitism the best individual survives unchanged in slot 0.
type Generational[C chromosome.Chromosome[C]] struct {
	Params
	Operators[C]
	Elitism bool
}

// Run evolves a copy of initial. Each generation is evaluated, its best
// member found and the desired fitness tested before any replacement, so
// the returned individual always carries fresh scores.
func (g *Generational[C]) Run(initial population.Population[C], rng random.Source) (Result[C], error) {
	if err := g.Params.validate(); err != nil {
		return Result[C]{}, err
	}
	if err := g.Operators.validate(len(initial)); err != nil {
		return Result[C]{}, err
	}

	l := newLoop(g.Params, &g.Operators)
	current := population.Clone(initial)
	next := make(population.Population[C], len(current))

	for gen := 0; gen < g.MaxGenerations; gen++ {
		best, done := l.step(current, gen)
		if done {
			return l.finish(best, gen, DesiredFitness), nil
		}

		start := 0
		if g.Elitism {
			next[0] = best.Clone()
			start = 1
		}
		for i := start; i < len(next); i++ {
			next[i] = l.offspring(current, rng)
		}
		current, next = next, current
	}

	best := l.evaluate(current)
	return l.finish(best, g.MaxGenerations, MaxGenerations), nil
}
