package chromosome

import "slices"

// Vector is an unbounded numeric chromosome. Genes are stored as written.
type Vector[T Number] struct {
	Score
	genes []T
}

// NewVector returns an unevaluated vector of n zero genes.
func NewVector[T Number](n int) (*Vector[T], error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	return &Vector[T]{Score: Unevaluated(), genes: make([]T, n)}, nil
}

// VectorOf returns an unevaluated vector holding a copy of genes.
func VectorOf[T Number](genes ...T) (*Vector[T], error) {
	v, err := NewVector[T](len(genes))
	if err != nil {
		return nil, err
	}
	copy(v.genes, genes)
	return v, nil
}

func (v *Vector[T]) Len() int       { return len(v.genes) }
func (v *Vector[T]) Positions() int { return len(v.genes) }

// At returns gene i.
func (v *Vector[T]) At(i int) T {
	checkIndex(i, len(v.genes))
	return v.genes[i]
}

// Set stores gene i.
func (v *Vector[T]) Set(i int, g T) {
	checkIndex(i, len(v.genes))
	v.genes[i] = g
}

func (v *Vector[T]) Float(i int) float64 { return float64(v.At(i)) }

// SetFloat stores v converted to the gene type. Integer genes truncate.
func (v *Vector[T]) SetFloat(i int, f float64) { v.Set(i, T(f)) }

func (v *Vector[T]) SwapAt(other *Vector[T], i int) {
	checkIndex(i, len(v.genes))
	checkIndex(i, len(other.genes))
	v.genes[i], other.genes[i] = other.genes[i], v.genes[i]
}

func (v *Vector[T]) Values() []float64 {
	out := make([]float64, len(v.genes))
	for i, g := range v.genes {
		out[i] = float64(g)
	}
	return out
}

// Genes returns a copy of the gene sequence.
func (v *Vector[T]) Genes() []T { return slices.Clone(v.genes) }

func (v *Vector[T]) Clone() *Vector[T] {
	return &Vector[T]{Score: v.Score, genes: slices.Clone(v.genes)}
}

// Equal compares gene sequences; scores are ignored.
func (v *Vector[T]) Equal(other *Vector[T]) bool {
	return slices.Equal(v.genes, other.genes)
}

func (v *Vector[T]) String() string { return format(v.genes, formatNumber[T]) }
