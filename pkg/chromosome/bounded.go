package chromosome

import (
	"fmt"
	"slices"
)

// Bounded is a numeric chromosome whose genes always lie in [lower, upper].
// Every write clamps into the range, whatever the write history.
type Bounded[T Number] struct {
	Score
	genes        []T
	lower, upper T
}

// NewBounded returns an unevaluated chromosome of n genes, each set to the
// lower bound. It fails when lower > upper.
func NewBounded[T Number](n int, lower, upper T) (*Bounded[T], error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	if !(lower <= upper) {
		return nil, fmt.Errorf("%w: lower %v > upper %v", ErrInvalidBounds, lower, upper)
	}
	b := &Bounded[T]{Score: Unevaluated(), genes: make([]T, n), lower: lower, upper: upper}
	for i := range b.genes {
		b.genes[i] = lower
	}
	return b, nil
}

// Bounds returns the lower and upper gene bounds.
func (b *Bounded[T]) Bounds() (T, T) { return b.lower, b.upper }

func (b *Bounded[T]) Len() int       { return len(b.genes) }
func (b *Bounded[T]) Positions() int { return len(b.genes) }

func (b *Bounded[T]) At(i int) T {
	checkIndex(i, len(b.genes))
	return b.genes[i]
}

// Set stores clamp(g, lower, upper) at gene i.
func (b *Bounded[T]) Set(i int, g T) {
	checkIndex(i, len(b.genes))
	b.genes[i] = b.clamp(g)
}

func (b *Bounded[T]) Float(i int) float64 { return float64(b.At(i)) }

// SetFloat clamps in float64 before converting, so out-of-range reals never
// overflow an integer gene type.
func (b *Bounded[T]) SetFloat(i int, f float64) {
	lo, hi := float64(b.lower), float64(b.upper)
	switch {
	case f < lo:
		f = lo
	case f > hi:
		f = hi
	}
	b.Set(i, T(f))
}

func (b *Bounded[T]) clamp(g T) T {
	switch {
	case g < b.lower:
		return b.lower
	case g > b.upper:
		return b.upper
	}
	return g
}

// SwapAt exchanges gene i with other. Each side re-clamps into its own bounds.
func (b *Bounded[T]) SwapAt(other *Bounded[T], i int) {
	checkIndex(i, len(b.genes))
	checkIndex(i, len(other.genes))
	mine, theirs := b.genes[i], other.genes[i]
	b.genes[i] = b.clamp(theirs)
	other.genes[i] = other.clamp(mine)
}

func (b *Bounded[T]) Values() []float64 {
	out := make([]float64, len(b.genes))
	for i, g := range b.genes {
		out[i] = float64(g)
	}
	return out
}

func (b *Bounded[T]) Genes() []T { return slices.Clone(b.genes) }

func (b *Bounded[T]) Clone() *Bounded[T] {
	return &Bounded[T]{Score: b.Score, genes: slices.Clone(b.genes), lower: b.lower, upper: b.upper}
}

// Equal compares gene sequences; bounds and scores are ignored.
func (b *Bounded[T]) Equal(other *Bounded[T]) bool {
	return slices.Equal(b.genes, other.genes)
}

func (b *Bounded[T]) String() string { return format(b.genes, formatNumber[T]) }
