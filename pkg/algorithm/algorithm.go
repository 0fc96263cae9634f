package algorithm

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/crossover"
	"github.com/wildfunctions/evolve/pkg/mutation"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/problem"
	"github.com/wildfunctions/evolve/pkg/random"
	"github.com/wildfunctions/evolve/pkg/selection"
)

// ErrInvalidParams is returned when a loop is configured in a way it cannot
// run. It is reported before the first generation.
var ErrInvalidParams = errors.New("invalid algorithm parameters")

// Reason tells why a run stopped.
type Reason int

const (
	// DesiredFitness means the best individual came within Precision of
	// the desired fitness.
	DesiredFitness Reason = iota
	// MaxGenerations means the generation cap was reached.
	MaxGenerations
)

func (r Reason) String() string {
	switch r {
	case DesiredFitness:
		return "desired_fitness"
	case MaxGenerations:
		return "max_generations"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Params are the termination and logging settings shared by every loop.
type Params struct {
	MaxGenerations int
	DesiredFitness float64
	// Precision is the inclusive tolerance around DesiredFitness.
	Precision float64
	// LogFrequency logs the best individual every LogFrequency generations.
	// Zero disables it.
	LogFrequency int
}

// Stats is what an Observer sees after each evaluation.
type Stats struct {
	Generation int
	population.Summary
}

// Observer receives per-generation statistics. It must not retain or
// modify the population.
type Observer func(Stats)

// Operators are the collaborators a loop composes.
type Operators[C chromosome.Chromosome[C]] struct {
	Problem   problem.Problem[C]
	Selection selection.Selector[C]
	Crossover crossover.Crossover[C]
	Mutation  mutation.Mutator[C]

	// Logger defaults to discarding everything.
	Logger *slog.Logger
	// Observer is optional.
	Observer Observer
}

// Result is the outcome of a run. Best is a freshly evaluated copy owned by
// the caller.
type Result[C chromosome.Chromosome[C]] struct {
	Best        C
	Generation  int
	Reason      Reason
	Evaluations int
}

func (p Params) validate() error {
	switch {
	case p.MaxGenerations < 0:
		return fmt.Errorf("%w: max generations %d < 0", ErrInvalidParams, p.MaxGenerations)
	case !(p.Precision >= 0):
		return fmt.Errorf("%w: precision %v", ErrInvalidParams, p.Precision)
	case p.LogFrequency < 0:
		return fmt.Errorf("%w: log frequency %d < 0", ErrInvalidParams, p.LogFrequency)
	case math.IsNaN(p.DesiredFitness):
		return fmt.Errorf("%w: desired fitness is NaN", ErrInvalidParams)
	}
	return nil
}

func (o *Operators[C]) validate(size int) error {
	switch {
	case o.Problem == nil:
		return fmt.Errorf("%w: no problem", ErrInvalidParams)
	case o.Selection == nil:
		return fmt.Errorf("%w: no selection", ErrInvalidParams)
	case o.Crossover == nil:
		return fmt.Errorf("%w: no crossover", ErrInvalidParams)
	case o.Mutation == nil:
		return fmt.Errorf("%w: no mutation", ErrInvalidParams)
	}
	if size < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, population.ErrInvalidSize)
	}
	if err := o.Selection.Check(size); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

// loop holds the state shared by both algorithms during one run.
type loop[C chromosome.Chromosome[C]] struct {
	params      Params
	ops         *Operators[C]
	log         *slog.Logger
	evaluations int
}

func newLoop[C chromosome.Chromosome[C]](params Params, ops *Operators[C]) *loop[C] {
	log := ops.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &loop[C]{params: params, ops: ops, log: log}
}

// evaluate scores the whole population and returns its first best member.
func (l *loop[C]) evaluate(pop population.Population[C]) C {
	l.ops.Problem.Evaluate(pop)
	l.evaluations += len(pop)
	return population.Best(pop)
}

// step evaluates one generation, reports it and tells whether the desired
// fitness has been reached.
func (l *loop[C]) step(pop population.Population[C], gen int) (C, bool) {
	best := l.evaluate(pop)
	if l.ops.Observer != nil {
		l.ops.Observer(Stats{Generation: gen, Summary: population.Summarize(pop)})
	}
	if l.params.LogFrequency > 0 && gen%l.params.LogFrequency == 0 {
		l.log.Info("generation",
			"generation", gen,
			"fitness", best.Scores().Fitness,
			"solution", best.String())
	}
	return best, math.Abs(best.Scores().Fitness-l.params.DesiredFitness) <= l.params.Precision
}

// offspring is mutation(crossover(select, select)[0]).
func (l *loop[C]) offspring(pop population.Population[C], rng random.Source) C {
	mom := l.ops.Selection.Select(pop, rng)
	dad := l.ops.Selection.Select(pop, rng)
	return l.ops.Mutation.Mutate(l.ops.Crossover.Cross(mom, dad, rng)[0], rng)
}

func (l *loop[C]) finish(best C, gen int, reason Reason) Result[C] {
	switch reason {
	case DesiredFitness:
		l.log.Info("reached desired fitness", "generation", gen, "fitness", best.Scores().Fitness)
	case MaxGenerations:
		l.log.Info("maximum generations reached", "generation", gen, "fitness", best.Scores().Fitness)
	}
	return Result[C]{Best: best.Clone(), Generation: gen, Reason: reason, Evaluations: l.evaluations}
}
