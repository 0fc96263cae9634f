package engine

import (
	"fmt"

	"github.com/wildfunctions/evolve/pkg/algorithm"
	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/crossover"
	"github.com/wildfunctions/evolve/pkg/mutation"
	"github.com/wildfunctions/evolve/pkg/selection"
)

func newSelector[C chromosome.Chromosome[C]](cfg Config) (selection.Selector[C], error) {
	switch cfg.Selection {
	case "tournament":
		return selection.NewTournament[C](cfg.TournamentSize)
	case "roulette":
		return selection.NewRouletteWheel[C](true), nil
	}
	return nil, fmt.Errorf("%w: unknown selection %q", ErrInvalidConfig, cfg.Selection)
}

// compose returns the single operator, or an equal-weight composite of
// several.
func compose[C chromosome.Chromosome[C]](ops []crossover.Crossover[C]) (crossover.Crossover[C], error) {
	if len(ops) == 1 {
		return ops[0], nil
	}
	return crossover.Equal(ops...)
}

func positionalCrossover[C chromosome.Positional[C]](name string) (crossover.Crossover[C], error) {
	switch name {
	case "single_point":
		return crossover.NewSinglePoint[C](), nil
	case "uniform":
		return crossover.NewUniform[C](), nil
	}
	return nil, fmt.Errorf("%w: unknown crossover %q", ErrInvalidConfig, name)
}

func realCrossover[C chromosome.RealVector[C]](name string, cfg Config) (crossover.Crossover[C], error) {
	switch name {
	case "arithmetical":
		return crossover.NewArithmetical[C](cfg.Lambda), nil
	case "blx_alpha":
		return crossover.NewBlxAlpha[C](cfg.Alpha)
	case "flat":
		return crossover.NewFlat[C](), nil
	}
	return positionalCrossover[C](name)
}

// realOperators builds selection, crossover and Gaussian mutation for
// real-valued vectors. The problem is left to the caller.
func realOperators[C chromosome.RealVector[C]](cfg Config) (algorithm.Operators[C], error) {
	sel, err := newSelector[C](cfg)
	if err != nil {
		return algorithm.Operators[C]{}, err
	}
	var parts []crossover.Crossover[C]
	for _, name := range cfg.CrossoverNames() {
		op, err := realCrossover[C](name, cfg)
		if err != nil {
			return algorithm.Operators[C]{}, err
		}
		parts = append(parts, op)
	}
	cross, err := compose(parts)
	if err != nil {
		return algorithm.Operators[C]{}, err
	}
	mode, err := mutation.ParseMode(cfg.GaussianMode)
	if err != nil {
		return algorithm.Operators[C]{}, err
	}
	mut, err := mutation.NewGaussian[C](cfg.MutationRate, cfg.Force, cfg.Sigma, mode)
	if err != nil {
		return algorithm.Operators[C]{}, err
	}
	return algorithm.Operators[C]{Selection: sel, Crossover: cross, Mutation: mut}, nil
}

// bitOperators builds selection, position crossover and bit-flip mutation
// for bit-string chromosomes.
func bitOperators[C chromosome.Bitwise[C]](cfg Config) (algorithm.Operators[C], error) {
	sel, err := newSelector[C](cfg)
	if err != nil {
		return algorithm.Operators[C]{}, err
	}
	var parts []crossover.Crossover[C]
	for _, name := range cfg.CrossoverNames() {
		op, err := positionalCrossover[C](name)
		if err != nil {
			return algorithm.Operators[C]{}, err
		}
		parts = append(parts, op)
	}
	cross, err := compose(parts)
	if err != nil {
		return algorithm.Operators[C]{}, err
	}
	mut, err := mutation.NewBitFlip[C](cfg.MutationRate, cfg.Force)
	if err != nil {
		return algorithm.Operators[C]{}, err
	}
	return algorithm.Operators[C]{Selection: sel, Crossover: cross, Mutation: mut}, nil
}
