package chromosome

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/constraints"
)

var (
	// ErrInvalidBounds is returned when a lower bound exceeds the upper bound.
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrInvalidLength is returned for a gene count or bit length that cannot be stored.
	ErrInvalidLength = errors.New("invalid length")
	// ErrIndexOutOfRange is the panic value for gene or bit access outside the chromosome.
	ErrIndexOutOfRange = errors.New("index out of range")
)

const (
	// WorstFitness is the fitness of an individual that has not been evaluated.
	WorstFitness = -math.MaxFloat64
	// WorstPenalty is the penalty of an individual that has not been evaluated.
	WorstPenalty = math.MaxFloat64
)

// Number is the set of gene types numeric chromosomes can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Score holds the evaluated quality of a chromosome. Larger Fitness is
// better; Penalty is the negation in the opposite orientation.
type Score struct {
	Fitness float64
	Penalty float64
}

// Unevaluated returns the score carried by individuals before evaluation.
func Unevaluated() Score {
	return Score{Fitness: WorstFitness, Penalty: WorstPenalty}
}

// Scores gives operators and problem wrappers access to the embedded score.
func (s *Score) Scores() *Score { return s }

// Reset restores the unevaluated sentinels.
func (s *Score) Reset() { *s = Unevaluated() }

// Chromosome is the contract shared by every representation. C is the
// concrete pointer type, so Clone keeps the static type.
type Chromosome[C any] interface {
	Len() int
	// Values returns the genes as reals (decoded for bit-string encodings).
	Values() []float64
	Scores() *Score
	Clone() C
	String() string
}

// Real is a chromosome with read/write real-valued genes.
type Real[C any] interface {
	Chromosome[C]
	Float(i int) float64
	SetFloat(i int, v float64)
}

// Positional is a chromosome whose raw storage positions can be exchanged
// with another chromosome of the same shape. For vectors a position is a
// gene; for bit-string encodings it is a bit.
type Positional[C any] interface {
	Chromosome[C]
	Positions() int
	SwapAt(other C, i int)
}

// RealVector is a real-valued chromosome whose positions are its genes.
type RealVector[C any] interface {
	Real[C]
	Positional[C]
}

// Bitwise is a chromosome stored as bits.
type Bitwise[C any] interface {
	Positional[C]
	Bit(i int) bool
	SetBit(i int, v bool)
	FlipAt(i int)
}

// Better reports whether a has strictly larger fitness than b.
func Better[C Chromosome[C]](a, b C) bool {
	return a.Scores().Fitness > b.Scores().Fitness
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n))
	}
}

func checkLength(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d genes", ErrInvalidLength, n)
	}
	return nil
}

func format[T any](genes []T, str func(T) string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, g := range genes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(str(g))
	}
	b.WriteByte('}')
	return b.String()
}

func formatNumber[T Number](v T) string {
	return fmt.Sprint(v)
}
