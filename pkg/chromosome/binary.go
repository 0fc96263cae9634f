package chromosome

import (
	"fmt"
	"math"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// MaxBitsPerGene is the widest gene encoding a Binary chromosome supports.
const MaxBitsPerGene = 64

// Binary is a real-valued chromosome stored as a bit string. Each of its
// genes occupies BitsPerGene consecutive bits, least significant first, and
// decodes to lower + v·(upper-lower)/(2^L - 1). There is no encode: operators
// act on the bits directly.
type Binary struct {
	Score
	bits         *bitset.BitSet
	genes        int
	lower, upper float64
	width        float64
	digits       uint8
	length       uint8
	maxValue     uint64
}

// BitsPerGene returns round(log2(floor(1 + width·10^digits))), the number
// of bits needed to resolve the bound width to the given decimal digits.
func BitsPerGene(lower, upper float64, digits uint8) int {
	width := upper - lower
	l := math.Round(math.Log2(math.Floor(1 + width*math.Pow10(int(digits)))))
	if math.IsNaN(l) || l > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(l)
}

// NewBinary returns an unevaluated chromosome of n genes with every bit
// cleared. It fails when lower > upper or when the derived bit length is
// zero or exceeds MaxBitsPerGene.
func NewBinary(n int, lower, upper float64, digits uint8) (*Binary, error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	if !(lower <= upper) || math.IsInf(upper-lower, 0) {
		return nil, fmt.Errorf("%w: lower %v > upper %v", ErrInvalidBounds, lower, upper)
	}
	l := BitsPerGene(lower, upper, digits)
	if l < 1 || l > MaxBitsPerGene {
		return nil, fmt.Errorf("%w: %d bits per gene for width %v at %d digits (want 1..%d)",
			ErrInvalidLength, l, upper-lower, digits, MaxBitsPerGene)
	}
	return &Binary{
		Score:    Unevaluated(),
		bits:     bitset.New(uint(n * l)),
		genes:    n,
		lower:    lower,
		upper:    upper,
		width:    upper - lower,
		digits:   digits,
		length:   uint8(l),
		maxValue: math.MaxUint64 >> (MaxBitsPerGene - l),
	}, nil
}

func (b *Binary) Len() int { return b.genes }

// Positions is the total bit count, N × BitsPerGene.
func (b *Binary) Positions() int { return b.genes * int(b.length) }

func (b *Binary) BitsPerGene() int { return int(b.length) }

func (b *Binary) Bounds() (float64, float64) { return b.lower, b.upper }

// Raw returns the unsigned integer encoded by gene i.
func (b *Binary) Raw(i int) uint64 {
	checkIndex(i, b.genes)
	var v uint64
	start := uint(i) * uint(b.length)
	for k := uint(0); k < uint(b.length); k++ {
		if b.bits.Test(start + k) {
			v |= 1 << k
		}
	}
	return v
}

// Value decodes gene i.
func (b *Binary) Value(i int) float64 {
	v := b.Raw(i)
	if v == b.maxValue {
		return b.upper
	}
	return math.Min(b.lower+float64(v)*b.width/float64(b.maxValue), b.upper)
}

func (b *Binary) Values() []float64 {
	out := make([]float64, b.genes)
	for i := range out {
		out[i] = b.Value(i)
	}
	return out
}

func (b *Binary) Bit(i int) bool {
	checkIndex(i, b.Positions())
	return b.bits.Test(uint(i))
}

func (b *Binary) SetBit(i int, v bool) {
	checkIndex(i, b.Positions())
	b.bits.SetTo(uint(i), v)
}

func (b *Binary) FlipAt(i int) {
	checkIndex(i, b.Positions())
	b.bits.Flip(uint(i))
}

func (b *Binary) SwapAt(other *Binary, i int) {
	checkIndex(i, b.Positions())
	checkIndex(i, other.Positions())
	mine, theirs := b.bits.Test(uint(i)), other.bits.Test(uint(i))
	b.bits.SetTo(uint(i), theirs)
	other.bits.SetTo(uint(i), mine)
}

func (b *Binary) Clone() *Binary {
	c := *b
	c.bits = b.bits.Clone()
	return &c
}

// Equal compares bit strings; scores are ignored.
func (b *Binary) Equal(other *Binary) bool {
	return b.Positions() == other.Positions() && b.bits.Equal(other.bits)
}

// String renders the decoded genes followed by the raw bits.
func (b *Binary) String() string {
	var bits strings.Builder
	for i := 0; i < b.Positions(); i++ {
		if i > 0 && i%int(b.length) == 0 {
			bits.WriteByte(' ')
		}
		if b.bits.Test(uint(i)) {
			bits.WriteByte('1')
		} else {
			bits.WriteByte('0')
		}
	}
	return format(b.Values(), formatNumber[float64]) + " [" + bits.String() + "]"
}
