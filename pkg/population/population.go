package population

import (
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/wildfunctions/evolve/pkg/chromosome"
)

// Population is an ordered, fixed-size set of chromosomes. Individuals have
// no identity beyond their index.
type Population[C any] []C

// Clone returns a deep copy.
func Clone[C chromosome.Chromosome[C]](p Population[C]) Population[C] {
	out := make(Population[C], len(p))
	for i, c := range p {
		out[i] = c.Clone()
	}
	return out
}

// Fitnesses returns the fitness of every individual in order.
func Fitnesses[C chromosome.Chromosome[C]](p Population[C]) []float64 {
	out := make([]float64, len(p))
	for i, c := range p {
		out[i] = c.Scores().Fitness
	}
	return out
}

// BestIndex returns the index of the first individual with maximum fitness.
// It panics on an empty population.
func BestIndex[C chromosome.Chromosome[C]](p Population[C]) int {
	return floats.MaxIdx(Fitnesses(p))
}

// Best returns the first individual with maximum fitness.
func Best[C chromosome.Chromosome[C]](p Population[C]) C {
	return p[BestIndex(p)]
}

// Summary describes the fitness distribution of a population.
type Summary struct {
	Best   float64 `json:"best"`
	Worst  float64 `json:"worst"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Summarize computes fitness statistics. A single-member population has a
// zero standard deviation.
func Summarize[C chromosome.Chromosome[C]](p Population[C]) Summary {
	if len(p) == 0 {
		return Summary{}
	}
	fit := Fitnesses(p)
	s := Summary{Best: floats.Max(fit), Worst: floats.Min(fit)}
	if len(fit) == 1 {
		s.Mean = fit[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(fit, nil)
	return s
}

func String[C chromosome.Chromosome[C]](p Population[C]) string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
