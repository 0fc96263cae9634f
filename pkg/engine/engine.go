package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wildfunctions/evolve/pkg/algorithm"
	"github.com/wildfunctions/evolve/pkg/benchmark"
	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/metrics"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/problem"
	"github.com/wildfunctions/evolve/pkg/random"
)

// attemptFunc runs one independent attempt for a concrete representation.
type attemptFunc func(attempt int) (AttemptResult, []GenerationReport, error)

// Engine runs the evolutionary search.
type Engine struct {
	cfg          Config
	fn           benchmark.Function
	counter      *benchmark.Counter
	orientation  problem.Orientation
	desired      float64
	lower, upper float64
	rng          random.Source
	log          *slog.Logger
	progress     io.Writer
	attempt      attemptFunc
}

// New creates a new engine from the given config. Every setting is checked
// and every operator built here, so a bad config fails before any
// generation runs. A nil logger discards logs.
func New(cfg Config, log *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	fn, err := benchmark.Get(cfg.Function)
	if err != nil {
		return nil, err
	}

	orientation := problem.Minimize
	if fn.Maximize {
		orientation = problem.Maximize
	}
	if cfg.Orientation != "" {
		orientation, _ = problem.ParseOrientation(cfg.Orientation)
	}

	desired, err := desiredFitness(cfg, fn, orientation)
	if err != nil {
		return nil, err
	}

	lower, upper := cfg.Lower, cfg.Upper
	if lower == 0 && upper == 0 {
		lower, upper = fn.Lower, fn.Upper
	}

	e := &Engine{
		cfg:         cfg,
		fn:          fn,
		counter:     benchmark.NewCounter(fn.Eval),
		orientation: orientation,
		desired:     desired,
		lower:       lower,
		upper:       upper,
		rng:         random.New(cfg.Seed),
		log:         log,
		progress:    io.Discard,
	}

	switch cfg.Representation {
	case "bounded":
		template, err := chromosome.NewBounded(cfg.Genes, lower, upper)
		if err != nil {
			return nil, err
		}
		e.attempt, err = realAttempts(e, template)
		if err != nil {
			return nil, err
		}
	case "vector":
		template, err := chromosome.NewVector[float64](cfg.Genes)
		if err != nil {
			return nil, err
		}
		e.attempt, err = realAttempts(e, template)
		if err != nil {
			return nil, err
		}
	case "binary":
		template, err := chromosome.NewBinary(cfg.Genes, lower, upper, cfg.Digits)
		if err != nil {
			return nil, err
		}
		e.attempt, err = bitAttempts(e, template)
		if err != nil {
			return nil, err
		}
	case "bits":
		template, err := chromosome.NewBitVector(cfg.Genes)
		if err != nil {
			return nil, err
		}
		e.attempt, err = bitAttempts(e, template)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SetProgress directs per-generation text reports (Verbose) to w.
func (e *Engine) SetProgress(w io.Writer) {
	e.progress = w
}

// DesiredFitness returns the fitness the run stops at, in "larger is
// better" terms.
func (e *Engine) DesiredFitness() float64 { return e.desired }

// desiredFitness converts the function's known optimum into a fitness
// target unless the config names one.
func desiredFitness(cfg Config, fn benchmark.Function, o problem.Orientation) (float64, error) {
	if cfg.DesiredFitness != nil {
		return *cfg.DesiredFitness, nil
	}
	if (o == problem.Maximize) != fn.Maximize {
		return 0, fmt.Errorf("%w: %s is not usually %sd; set desired_fitness", ErrInvalidConfig, fn.Name, o)
	}
	optimum := fn.Optimum(cfg.Genes)
	if math.IsNaN(optimum) {
		return 0, fmt.Errorf("%w: no known optimum for %s with %d genes; set desired_fitness", ErrInvalidConfig, fn.Name, cfg.Genes)
	}
	if o == problem.Minimize {
		return -optimum, nil
	}
	return optimum, nil
}

// Run executes Attempts independent runs and returns the final report.
// Attempts share the seeded random stream, so a fixed seed reproduces the
// whole report.
func (e *Engine) Run() (FinalReport, error) {
	e.log.Info("starting",
		"function", e.cfg.Function,
		"orientation", e.orientation.String(),
		"representation", e.cfg.Representation,
		"genes", e.cfg.Genes,
		"algorithm", e.cfg.Algorithm,
		"population", e.cfg.Population,
		"generations", e.cfg.Generations,
		"desired_fitness", e.desired,
		"seed", e.cfg.Seed)

	report := FinalReport{Config: e.cfg, DesiredFitness: e.desired}
	for attempt := 1; attempt <= e.cfg.Attempts; attempt++ {
		result, gens, err := e.attempt(attempt)
		if err != nil {
			return FinalReport{}, fmt.Errorf("attempt %d: %w", attempt, err)
		}
		report.Attempts = append(report.Attempts, result)
		if e.cfg.Verbose {
			report.Generations = append(report.Generations, gens...)
		}
		if attempt == 1 || result.Fitness > report.Best.Fitness {
			report.Best = result
		}
		if result.Reason == algorithm.DesiredFitness {
			break
		}
	}
	return report, nil
}

// evolver is the common surface of the generational and steady-state
// loops.
type evolver[C chromosome.Chromosome[C]] interface {
	Run(initial population.Population[C], rng random.Source) (algorithm.Result[C], error)
}

func (e *Engine) params() algorithm.Params {
	return algorithm.Params{
		MaxGenerations: e.cfg.Generations,
		DesiredFitness: e.desired,
		Precision:      e.cfg.Precision,
		LogFrequency:   e.cfg.LogFrequency,
	}
}

// newEvolver wires ops into the configured loop.
func newEvolver[C chromosome.Chromosome[C]](e *Engine, ops algorithm.Operators[C]) evolver[C] {
	if e.cfg.Algorithm == "steady_state" {
		return &algorithm.SteadyState[C]{Params: e.params(), Operators: ops, MortalityRate: e.cfg.MortalityRate}
	}
	return &algorithm.Generational[C]{Params: e.params(), Operators: ops, Elitism: e.cfg.Elitism}
}

// attempts returns the attemptFunc for one representation. seed builds a
// fresh initial population from the engine's random stream.
func attempts[C chromosome.Chromosome[C]](
	e *Engine,
	ops algorithm.Operators[C],
	seed func(rng random.Source) (population.Population[C], error),
) attemptFunc {
	return func(attempt int) (AttemptResult, []GenerationReport, error) {
		runID := uuid.NewString()
		log := e.log.With("run_id", runID, "attempt", attempt)

		var gens []GenerationReport
		ops := ops
		ops.Logger = log
		ops.Observer = func(s algorithm.Stats) {
			metrics.RecordGeneration(e.cfg.Algorithm, runID, s.Best)
			if e.cfg.Verbose {
				r := GenerationReport{Attempt: attempt, Generation: s.Generation, Summary: s.Summary}
				gens = append(gens, r)
				WriteTextReport(e.progress, r)
			}
		}
		defer metrics.ForgetRun(runID)

		initial, err := seed(e.rng)
		if err != nil {
			return AttemptResult{}, nil, err
		}

		calls := e.counter.Calls()
		start := time.Now()
		res, err := newEvolver(e, ops).Run(initial, e.rng)
		if err != nil {
			return AttemptResult{}, nil, err
		}
		elapsed := time.Since(start)

		metrics.RecordEvaluations(e.fn.Name, int(e.counter.Calls()-calls))
		metrics.RecordRun(e.cfg.Algorithm, res.Reason.String(), elapsed)

		best := res.Best.Scores()
		return AttemptResult{
			Attempt:     attempt,
			RunID:       runID,
			Generation:  res.Generation,
			Reason:      res.Reason,
			Evaluations: res.Evaluations,
			Best:        res.Best.String(),
			Values:      res.Best.Values(),
			Fitness:     best.Fitness,
			Penalty:     best.Penalty,
			Duration:    elapsed,
			Timestamp:   time.Now().UTC(),
		}, gens, nil
	}
}

func realAttempts[C chromosome.RealVector[C]](e *Engine, template C) (attemptFunc, error) {
	ops, err := realOperators[C](e.cfg)
	if err != nil {
		return nil, err
	}
	ops.Problem, err = problem.New[C](e.orientation, e.counter.Eval)
	if err != nil {
		return nil, err
	}

	name := e.cfg.Initializer
	if name == "" {
		name = "uniform"
	}
	factory, err := population.GetReal(name)
	if err != nil {
		return nil, err
	}
	gene := factory(e.lower, e.upper)

	return attempts(e, ops, func(rng random.Source) (population.Population[C], error) {
		return population.NewReal(template, e.cfg.Population, gene, rng)
	}), nil
}

func bitAttempts[C chromosome.Bitwise[C]](e *Engine, template C) (attemptFunc, error) {
	ops, err := bitOperators[C](e.cfg)
	if err != nil {
		return nil, err
	}
	ops.Problem, err = problem.New[C](e.orientation, e.counter.Eval)
	if err != nil {
		return nil, err
	}

	name := e.cfg.Initializer
	if name == "" {
		name = "coin"
	}
	bit, err := population.GetBits(name)
	if err != nil {
		return nil, err
	}

	return attempts(e, ops, func(rng random.Source) (population.Population[C], error) {
		return population.NewBitwise(template, e.cfg.Population, bit, rng)
	}), nil
}
