package crossover

import (
	"fmt"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/random"
)

// Composite delegates each call to one of its operators, chosen with
// probability proportional to its weight.
type Composite[C chromosome.Chromosome[C]] struct {
	ops   []Crossover[C]
	probs []float64
}

// NewComposite pairs ops with weights. Weights need not sum to one but must
// all be positive.
func NewComposite[C chromosome.Chromosome[C]](ops []Crossover[C], weights []float64) (*Composite[C], error) {
	if len(ops) != len(weights) {
		return nil, fmt.Errorf("%w: %d operators, %d weights", random.ErrInvalidWeights, len(ops), len(weights))
	}
	probs, err := random.Normalize(weights)
	if err != nil {
		return nil, err
	}
	return &Composite[C]{ops: ops, probs: probs}, nil
}

// Equal gives every operator the same probability.
func Equal[C chromosome.Chromosome[C]](ops ...Crossover[C]) (*Composite[C], error) {
	weights := make([]float64, len(ops))
	for i := range weights {
		weights[i] = 1
	}
	return NewComposite(ops, weights)
}

func (c *Composite[C]) Cross(mom, dad C, rng random.Source) []C {
	return c.ops[random.Pick(rng, c.probs)].Cross(mom, dad, rng)
}
