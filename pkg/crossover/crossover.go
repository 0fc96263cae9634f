package crossover

import (
	"errors"
	"fmt"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/random"
)

// ErrInvalidParameter is returned for an operator parameter outside its
// domain.
var ErrInvalidParameter = errors.New("invalid crossover parameter")

// Crossover recombines two parents of the same shape into one or two
// children. Parents are not modified and children come back unevaluated.
type Crossover[C chromosome.Chromosome[C]] interface {
	Cross(mom, dad C, rng random.Source) []C
}

// child returns an unevaluated copy of parent.
func child[C chromosome.Chromosome[C]](parent C) C {
	c := parent.Clone()
	c.Scores().Reset()
	return c
}

// Arithmetical produces the convex combinations λ·mom + (1−λ)·dad and
// (1−λ)·mom + λ·dad. Lambda is not clamped.
type Arithmetical[C chromosome.Real[C]] struct {
	Lambda float64
}

func NewArithmetical[C chromosome.Real[C]](lambda float64) *Arithmetical[C] {
	return &Arithmetical[C]{Lambda: lambda}
}

func (a *Arithmetical[C]) Cross(mom, dad C, _ random.Source) []C {
	first, second := child(mom), child(dad)
	for i := 0; i < mom.Len(); i++ {
		m, d := mom.Float(i), dad.Float(i)
		first.SetFloat(i, a.Lambda*m+(1-a.Lambda)*d)
		second.SetFloat(i, (1-a.Lambda)*m+a.Lambda*d)
	}
	return []C{first, second}
}

// BlxAlpha samples each gene around the parents' interval, widened by
// Alpha on both sides. It produces one child.
type BlxAlpha[C chromosome.Real[C]] struct {
	Alpha float64
}

func NewBlxAlpha[C chromosome.Real[C]](alpha float64) (*BlxAlpha[C], error) {
	if !(alpha >= 0) {
		return nil, fmt.Errorf("%w: alpha %v < 0", ErrInvalidParameter, alpha)
	}
	return &BlxAlpha[C]{Alpha: alpha}, nil
}

func (b *BlxAlpha[C]) Cross(mom, dad C, rng random.Source) []C {
	out := child(mom)
	for i := 0; i < mom.Len(); i++ {
		cmin, cmax := minmax(mom.Float(i), dad.Float(i))
		span := cmax - cmin
		interval := span * (1 - 2*b.Alpha)
		out.SetFloat(i, cmin-span*b.Alpha+interval*rng.Uniform(0, 1))
	}
	return []C{out}
}

// Flat samples each gene uniformly between the parents' values. It
// produces one child.
type Flat[C chromosome.Real[C]] struct{}

func NewFlat[C chromosome.Real[C]]() *Flat[C] { return &Flat[C]{} }

func (*Flat[C]) Cross(mom, dad C, rng random.Source) []C {
	out := child(mom)
	for i := 0; i < mom.Len(); i++ {
		out.SetFloat(i, rng.Uniform(mom.Float(i), dad.Float(i)))
	}
	return []C{out}
}

// SinglePoint cuts both parents at one position b drawn from [0, P], where
// P counts raw positions (bits for binary encodings). The first child takes
// dad's positions before b and mom's from b on; the second is the
// complement.
type SinglePoint[C chromosome.Positional[C]] struct{}

func NewSinglePoint[C chromosome.Positional[C]]() *SinglePoint[C] { return &SinglePoint[C]{} }

func (*SinglePoint[C]) Cross(mom, dad C, rng random.Source) []C {
	first, second := child(mom), child(dad)
	b := rng.IntN(mom.Positions() + 1)
	for i := 0; i < b; i++ {
		first.SwapAt(second, i)
	}
	return []C{first, second}
}

// Uniform exchanges each position between the two children with
// probability one half.
type Uniform[C chromosome.Positional[C]] struct{}

func NewUniform[C chromosome.Positional[C]]() *Uniform[C] { return &Uniform[C]{} }

func (*Uniform[C]) Cross(mom, dad C, rng random.Source) []C {
	first, second := child(mom), child(dad)
	for i := 0; i < mom.Positions(); i++ {
		if rng.Boolean() {
			first.SwapAt(second, i)
		}
	}
	return []C{first, second}
}

func minmax(a, b float64) (float64, float64) {
	if b < a {
		return b, a
	}
	return a, b
}
