package selection

import (
	"errors"
	"fmt"
	"math"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/random"
)

var (
	// ErrInvalidTournament is returned for a tournament size below one or
	// above the population size.
	ErrInvalidTournament = errors.New("invalid tournament size")
	// ErrEmptyPopulation is returned when selecting from no individuals.
	ErrEmptyPopulation = errors.New("empty population")
)

// Selector picks one individual from an evaluated population. It returns
// the individual itself, not a copy, and never modifies the population.
type Selector[C chromosome.Chromosome[C]] interface {
	Select(pop population.Population[C], rng random.Source) C
	// Check reports whether the selector can work on populations of size n.
	Check(n int) error
}

// Tournament draws K individuals uniformly with replacement and keeps the
// fittest, the first one seen on ties.
type Tournament[C chromosome.Chromosome[C]] struct {
	K int
}

func NewTournament[C chromosome.Chromosome[C]](k int) (*Tournament[C], error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTournament, k)
	}
	return &Tournament[C]{K: k}, nil
}

func (t *Tournament[C]) Check(n int) error {
	if t.K < 1 || n < t.K {
		return fmt.Errorf("%w: %d for population of %d", ErrInvalidTournament, t.K, n)
	}
	return nil
}

// Select runs one tournament. When K covers the whole population the
// tournament is exhaustive, so it returns the best individual and consumes
// no draws from rng.
func (t *Tournament[C]) Select(pop population.Population[C], rng random.Source) C {
	if t.K >= len(pop) {
		return population.Best(pop)
	}
	best := pop[rng.IntN(len(pop))]
	for i := 1; i < t.K; i++ {
		c := pop[rng.IntN(len(pop))]
		if chromosome.Better(c, best) {
			best = c
		}
	}
	return best
}

// RouletteWheel selects proportionally to |fitness|, or to |penalty| when
// UseFitness is false. Individuals that have not been evaluated weigh
// nothing.
type RouletteWheel[C chromosome.Chromosome[C]] struct {
	UseFitness bool
}

func NewRouletteWheel[C chromosome.Chromosome[C]](useFitness bool) *RouletteWheel[C] {
	return &RouletteWheel[C]{UseFitness: useFitness}
}

func (r *RouletteWheel[C]) Check(n int) error {
	if n < 1 {
		return ErrEmptyPopulation
	}
	return nil
}

func (r *RouletteWheel[C]) weight(c C) float64 {
	if *c.Scores() == chromosome.Unevaluated() {
		return 0
	}
	if r.UseFitness {
		return math.Abs(c.Scores().Fitness)
	}
	return math.Abs(c.Scores().Penalty)
}

// Select spins the wheel once. If every weight is zero it returns the last
// individual.
func (r *RouletteWheel[C]) Select(pop population.Population[C], rng random.Source) C {
	var sum float64
	for _, c := range pop {
		sum += r.weight(c)
	}
	last := pop[len(pop)-1]
	if !(sum > 0) {
		return last
	}

	draw := rng.Uniform(0, 1)
	var cumulative float64
	for _, c := range pop {
		cumulative += r.weight(c)
		if draw < cumulative/sum {
			return c
		}
	}
	return last
}
