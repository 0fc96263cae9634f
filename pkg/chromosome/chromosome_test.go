package chromosome

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ RealVector[*Vector[float64]]  = (*Vector[float64])(nil)
	_ RealVector[*Vector[int32]]    = (*Vector[int32])(nil)
	_ RealVector[*Bounded[float64]] = (*Bounded[float64])(nil)
	_ RealVector[*Bounded[int]]     = (*Bounded[int])(nil)
	_ Bitwise[*Binary]              = (*Binary)(nil)
	_ Bitwise[*BitVector]           = (*BitVector)(nil)
)

func TestScore_Unevaluated(t *testing.T) {
	v, err := NewVector[float64](3)
	require.NoError(t, err)
	assert.Equal(t, WorstFitness, v.Fitness)
	assert.Equal(t, WorstPenalty, v.Penalty)

	v.Fitness, v.Penalty = 1, -1
	v.Scores().Reset()
	assert.Equal(t, Unevaluated(), *v.Scores())
}

func TestBetter_OrdersByFitness(t *testing.T) {
	a, _ := VectorOf(1.0)
	b, _ := VectorOf(2.0)
	a.Fitness, b.Fitness = 5, 3
	assert.True(t, Better(a, b))
	assert.False(t, Better(b, a))
	b.Fitness = 5
	assert.False(t, Better(a, b), "equal fitness is not better")
}

func TestVector_AccessAndEquality(t *testing.T) {
	v, err := VectorOf(1.5, -2.5, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, -2.5, v.At(1))

	v.Set(1, 100) // unbounded
	assert.Equal(t, 100.0, v.Float(1))

	c := v.Clone()
	c.Fitness = 42
	assert.True(t, v.Equal(c), "fitness is excluded from equality")
	c.SetFloat(0, 0)
	assert.False(t, v.Equal(c))
	assert.Equal(t, "{1.5, 100, 3}", v.String())
}

func TestVector_IntegerGenesTruncate(t *testing.T) {
	v, err := NewVector[int](2)
	require.NoError(t, err)
	v.SetFloat(0, 3.9)
	v.SetFloat(1, -3.9)
	assert.Equal(t, []int{3, -3}, v.Genes())
}

func TestVector_IndexOutOfRangePanics(t *testing.T) {
	v, _ := NewVector[float64](2)
	assert.PanicsWithError(t, "index out of range: 2 not in [0, 2)", func() { v.At(2) })
	assert.Panics(t, func() { v.Set(-1, 0) })
}

func TestNewVector_RejectsEmpty(t *testing.T) {
	_, err := NewVector[float64](0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBounded_RejectsInvertedBounds(t *testing.T) {
	_, err := NewBounded(2, 1.0, -1.0)
	assert.ErrorIs(t, err, ErrInvalidBounds)
	_, err = NewBounded(2, math.NaN(), 1.0)
	assert.ErrorIs(t, err, ErrInvalidBounds)

	b, err := NewBounded(2, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, b.Genes())
}

func TestBounded_EveryWriteClamps(t *testing.T) {
	b, err := NewBounded(4, -10.0, 10.0)
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(1, 2))
	for step := 0; step < 5000; step++ {
		i := r.IntN(b.Len())
		v := (r.Float64() - 0.5) * 100
		if r.IntN(2) == 0 {
			b.Set(i, v)
		} else {
			b.SetFloat(i, v)
		}
		assert.Equal(t, math.Max(-10, math.Min(10, v)), b.At(i))
	}
}

func TestBounded_IntegerClampBeforeConversion(t *testing.T) {
	b, err := NewBounded[int8](1, -5, 5)
	require.NoError(t, err)
	b.SetFloat(0, 1e12)
	assert.Equal(t, int8(5), b.At(0))
	b.SetFloat(0, -1e12)
	assert.Equal(t, int8(-5), b.At(0))
}

func TestBounded_SwapReclamps(t *testing.T) {
	narrow, _ := NewBounded(1, 0.0, 1.0)
	wide, _ := NewBounded(1, -10.0, 10.0)
	wide.Set(0, 7)
	narrow.Set(0, 0.5)

	narrow.SwapAt(wide, 0)
	assert.Equal(t, 1.0, narrow.At(0))
	assert.Equal(t, 0.5, wide.At(0))
}

func TestBounded_CloneIsIndependent(t *testing.T) {
	b, _ := NewBounded(2, -1.0, 1.0)
	b.Set(0, 0.25)
	b.Fitness = 9
	c := b.Clone()
	assert.Equal(t, 9.0, c.Fitness)
	c.Set(0, -0.75)
	assert.Equal(t, 0.25, b.At(0))
	lo, hi := c.Bounds()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestBitsPerGene(t *testing.T) {
	// floor(1 + 20·10^3) = 20001, log2 ≈ 14.29
	assert.Equal(t, 14, BitsPerGene(-10, 10, 3))
	// floor(1 + 1·10^0) = 2
	assert.Equal(t, 1, BitsPerGene(0, 1, 0))
	assert.Equal(t, 0, BitsPerGene(2, 2, 5))
}

func TestNewBinary_Validation(t *testing.T) {
	_, err := NewBinary(2, 1, -1, 3)
	assert.ErrorIs(t, err, ErrInvalidBounds)

	_, err = NewBinary(2, 1, 1, 3)
	assert.ErrorIs(t, err, ErrInvalidLength, "zero width needs zero bits")

	_, err = NewBinary(2, 0, 1e10, 12)
	assert.ErrorIs(t, err, ErrInvalidLength, "more than 64 bits per gene")

	b, err := NewBinary(3, -10, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 14, b.BitsPerGene())
	assert.Equal(t, 42, b.Positions())
}

func TestBinary_DecodeEndpoints(t *testing.T) {
	cases := []struct {
		lower, upper float64
		digits       uint8
	}{
		{-10, 10, 3},
		{0.1, 0.3, 4},
		{-5.12, 5.12, 2},
		{0, 1e6, 13}, // 63 bits
	}
	for _, tc := range cases {
		b, err := NewBinary(2, tc.lower, tc.upper, tc.digits)
		require.NoError(t, err)

		assert.Equal(t, tc.lower, b.Value(0), "all-zero decodes to lower")
		for i := 0; i < b.BitsPerGene(); i++ {
			b.SetBit(i, true)
		}
		assert.Equal(t, tc.upper, b.Value(0), "all-one decodes to upper")
		assert.Equal(t, tc.lower, b.Value(1), "gene 1 untouched")
	}
}

func TestBinary_DecodeIsMonotonic(t *testing.T) {
	b, err := NewBinary(1, -1, 2, 2) // floor(1+300) = 301 → 8 bits
	require.NoError(t, err)
	require.Equal(t, 8, b.BitsPerGene())

	prev := math.Inf(-1)
	for v := 0; v < 1<<8; v++ {
		for k := 0; k < 8; k++ {
			b.SetBit(k, v&(1<<k) != 0)
		}
		require.Equal(t, uint64(v), b.Raw(0))
		got := b.Value(0)
		assert.GreaterOrEqual(t, got, prev)
		assert.InDelta(t, -1+3*float64(v)/255, got, 1e-12)
		prev = got
	}
}

func TestBinary_LeastSignificantBitFirst(t *testing.T) {
	b, err := NewBinary(2, 0, 15, 0) // floor(16) → 4 bits, max 15
	require.NoError(t, err)
	b.SetBit(4, true) // gene 1, bit 0
	b.SetBit(6, true) // gene 1, bit 2
	assert.Equal(t, uint64(5), b.Raw(1))
	assert.Equal(t, 5.0, b.Value(1))
	assert.Equal(t, []float64{0, 5}, b.Values())
}

func TestBinary_BitOperations(t *testing.T) {
	a, _ := NewBinary(1, 0, 15, 0)
	c := a.Clone()
	assert.True(t, a.Equal(c))

	a.FlipAt(3)
	assert.True(t, a.Bit(3))
	assert.False(t, c.Bit(3), "clone owns its bits")
	assert.False(t, a.Equal(c))

	a.SwapAt(c, 3)
	assert.False(t, a.Bit(3))
	assert.True(t, c.Bit(3))

	assert.Panics(t, func() { a.Bit(4) })
	assert.Panics(t, func() { a.Value(1) })
	assert.Equal(t, "{0} [0000]", a.String())
}

func TestBitVector(t *testing.T) {
	v, err := NewBitVector(4)
	require.NoError(t, err)
	v.SetBit(1, true)
	v.FlipAt(3)
	assert.Equal(t, []float64{0, 1, 0, 1}, v.Values())
	assert.Equal(t, "{0, 1, 0, 1}", v.String())

	w := v.Clone()
	w.FlipAt(0)
	assert.False(t, v.Equal(w))
	v.SwapAt(w, 0)
	assert.True(t, v.Bit(0))
	assert.False(t, w.Bit(0))
}
