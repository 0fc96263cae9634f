package mutation

import (
	"errors"
	"fmt"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/random"
)

var (
	// ErrInvalidProbability is returned for a mutation probability outside [0, 1].
	ErrInvalidProbability = errors.New("invalid mutation probability")
	// ErrInvalidSigma is returned for a standard deviation that is not positive.
	ErrInvalidSigma = errors.New("invalid mutation sigma")
)

// Mutator returns a mutated, unevaluated copy of its input.
type Mutator[C chromosome.Chromosome[C]] interface {
	Mutate(c C, rng random.Source) C
}

// All mutates every individual of pop into a new population.
func All[C chromosome.Chromosome[C]](m Mutator[C], pop population.Population[C], rng random.Source) population.Population[C] {
	out := make(population.Population[C], len(pop))
	for i, c := range pop {
		out[i] = m.Mutate(c, rng)
	}
	return out
}

func checkProbability(p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return nil
}

// Mode selects how a Gaussian draw is applied to a gene.
type Mode int

const (
	// Add perturbs the gene by the draw.
	Add Mode = iota
	// Set replaces the gene with the draw.
	Set
)

func (m Mode) String() string {
	switch m {
	case Add:
		return "add"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "add" and "set".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "add":
		return Add, nil
	case "set":
		return Set, nil
	}
	return 0, fmt.Errorf("unknown gaussian mode: %s", s)
}

// Gaussian mutates each gene with probability P by a Normal(0, Sigma) draw.
// With Force set, a call that mutated nothing mutates one uniformly chosen
// gene instead.
type Gaussian[C chromosome.Real[C]] struct {
	P     float64
	Force bool
	Sigma float64
	Mode  Mode
}

func NewGaussian[C chromosome.Real[C]](p float64, force bool, sigma float64, mode Mode) (*Gaussian[C], error) {
	if err := checkProbability(p); err != nil {
		return nil, err
	}
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}
	if mode != Add && mode != Set {
		return nil, fmt.Errorf("unknown gaussian mode: %v", mode)
	}
	return &Gaussian[C]{P: p, Force: force, Sigma: sigma, Mode: mode}, nil
}

func (g *Gaussian[C]) Mutate(c C, rng random.Source) C {
	out := c.Clone()
	out.Scores().Reset()
	mutated := false
	for i := 0; i < out.Len(); i++ {
		if rng.Uniform(0, 1) < g.P {
			g.apply(out, i, rng)
			mutated = true
		}
	}
	if !mutated && g.Force {
		g.apply(out, rng.IntN(out.Len()), rng)
	}
	return out
}

func (g *Gaussian[C]) apply(c C, i int, rng random.Source) {
	v := rng.Normal(0, g.Sigma)
	if g.Mode == Add {
		v += c.Float(i)
	}
	c.SetFloat(i, v)
}

// BitFlip negates each raw bit with probability P. With Force set, a call
// that flipped nothing flips one uniformly chosen bit.
type BitFlip[C chromosome.Bitwise[C]] struct {
	P     float64
	Force bool
}

func NewBitFlip[C chromosome.Bitwise[C]](p float64, force bool) (*BitFlip[C], error) {
	if err := checkProbability(p); err != nil {
		return nil, err
	}
	return &BitFlip[C]{P: p, Force: force}, nil
}

func (b *BitFlip[C]) Mutate(c C, rng random.Source) C {
	out := c.Clone()
	out.Scores().Reset()
	flipped := false
	for i := 0; i < out.Positions(); i++ {
		if rng.Uniform(0, 1) < b.P {
			out.FlipAt(i)
			flipped = true
		}
	}
	if !flipped && b.Force {
		out.FlipAt(rng.IntN(out.Positions()))
	}
	return out
}

// Composite delegates each call to one of its mutators, chosen with
// probability proportional to its weight.
type Composite[C chromosome.Chromosome[C]] struct {
	ops   []Mutator[C]
	probs []float64
}

func NewComposite[C chromosome.Chromosome[C]](ops []Mutator[C], weights []float64) (*Composite[C], error) {
	if len(ops) != len(weights) {
		return nil, fmt.Errorf("%w: %d mutators, %d weights", random.ErrInvalidWeights, len(ops), len(weights))
	}
	probs, err := random.Normalize(weights)
	if err != nil {
		return nil, err
	}
	return &Composite[C]{ops: ops, probs: probs}, nil
}

// Equal gives every mutator the same probability.
func Equal[C chromosome.Chromosome[C]](ops ...Mutator[C]) (*Composite[C], error) {
	weights := make([]float64, len(ops))
	for i := range weights {
		weights[i] = 1
	}
	return NewComposite(ops, weights)
}

func (m *Composite[C]) Mutate(c C, rng random.Source) C {
	return m.ops[random.Pick(rng, m.probs)].Mutate(c, rng)
}
