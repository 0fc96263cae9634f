package chromosome

import "slices"

// BitVector is an unbounded boolean chromosome.
type BitVector struct {
	Score
	genes []bool
}

// NewBitVector returns an unevaluated vector of n cleared bits.
func NewBitVector(n int) (*BitVector, error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	return &BitVector{Score: Unevaluated(), genes: make([]bool, n)}, nil
}

func (v *BitVector) Len() int       { return len(v.genes) }
func (v *BitVector) Positions() int { return len(v.genes) }

func (v *BitVector) Bit(i int) bool {
	checkIndex(i, len(v.genes))
	return v.genes[i]
}

func (v *BitVector) SetBit(i int, b bool) {
	checkIndex(i, len(v.genes))
	v.genes[i] = b
}

func (v *BitVector) FlipAt(i int) {
	checkIndex(i, len(v.genes))
	v.genes[i] = !v.genes[i]
}

func (v *BitVector) SwapAt(other *BitVector, i int) {
	checkIndex(i, len(v.genes))
	checkIndex(i, len(other.genes))
	v.genes[i], other.genes[i] = other.genes[i], v.genes[i]
}

// Values reports set bits as 1 and cleared bits as 0.
func (v *BitVector) Values() []float64 {
	out := make([]float64, len(v.genes))
	for i, g := range v.genes {
		if g {
			out[i] = 1
		}
	}
	return out
}

func (v *BitVector) Clone() *BitVector {
	return &BitVector{Score: v.Score, genes: slices.Clone(v.genes)}
}

func (v *BitVector) Equal(other *BitVector) bool {
	return slices.Equal(v.genes, other.genes)
}

func (v *BitVector) String() string {
	return format(v.genes, func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	})
}
