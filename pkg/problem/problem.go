package problem

import (
	"fmt"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/population"
)

// Objective maps a chromosome's genes to a single scalar. It must be pure.
type Objective func(genes []float64) float64

// Orientation says whether the objective is minimized or maximized.
type Orientation int

const (
	Minimize Orientation = iota
	Maximize
)

func (o Orientation) String() string {
	switch o {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation accepts "minimize"/"min" and "maximize"/"max".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "minimize", "min":
		return Minimize, nil
	case "maximize", "max":
		return Maximize, nil
	}
	return 0, fmt.Errorf("unknown orientation: %s", s)
}

// Problem scores chromosomes. Fitness is always "larger is better" and
// Penalty is its negation, whatever the orientation of the objective.
type Problem[C chromosome.Chromosome[C]] interface {
	Fitness(c C) float64
	Penalty(c C) float64
	// Evaluate stores fitness and penalty on every individual. It
	// recomputes on every call.
	Evaluate(pop population.Population[C])
	Orientation() Orientation
}

// Minimization treats the raw objective as a penalty.
type Minimization[C chromosome.Chromosome[C]] struct {
	Objective Objective
}

func NewMinimization[C chromosome.Chromosome[C]](fn Objective) *Minimization[C] {
	return &Minimization[C]{Objective: fn}
}

func (m *Minimization[C]) Penalty(c C) float64 { return m.Objective(c.Values()) }
func (m *Minimization[C]) Fitness(c C) float64 { return -m.Penalty(c) }

func (m *Minimization[C]) Evaluate(pop population.Population[C]) {
	for _, c := range pop {
		s := c.Scores()
		s.Penalty = m.Penalty(c)
		s.Fitness = -s.Penalty
	}
}

func (m *Minimization[C]) Orientation() Orientation { return Minimize }

// Maximization treats the raw objective as the fitness.
type Maximization[C chromosome.Chromosome[C]] struct {
	Objective Objective
}

func NewMaximization[C chromosome.Chromosome[C]](fn Objective) *Maximization[C] {
	return &Maximization[C]{Objective: fn}
}

func (m *Maximization[C]) Fitness(c C) float64 { return m.Objective(c.Values()) }
func (m *Maximization[C]) Penalty(c C) float64 { return -m.Fitness(c) }

func (m *Maximization[C]) Evaluate(pop population.Population[C]) {
	for _, c := range pop {
		s := c.Scores()
		s.Fitness = m.Fitness(c)
		s.Penalty = -s.Fitness
	}
}

func (m *Maximization[C]) Orientation() Orientation { return Maximize }

// New returns the wrapper for the given orientation.
func New[C chromosome.Chromosome[C]](o Orientation, fn Objective) (Problem[C], error) {
	if fn == nil {
		return nil, fmt.Errorf("nil objective")
	}
	switch o {
	case Minimize:
		return NewMinimization[C](fn), nil
	case Maximize:
		return NewMaximization[C](fn), nil
	}
	return nil, fmt.Errorf("unknown orientation: %v", o)
}
