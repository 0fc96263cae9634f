package population

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/random"
)

// countingSource counts draws so tests can check the factory consumes one
// draw per gene.
type countingSource struct {
	random.Source
	calls int
}

func (c *countingSource) Normal(mean, stddev float64) float64 {
	c.calls++
	return c.Source.Normal(mean, stddev)
}

func (c *countingSource) Boolean() bool {
	c.calls++
	return c.Source.Boolean()
}

func withFitness(t *testing.T, fitness ...float64) Population[*chromosome.Vector[float64]] {
	t.Helper()
	pop := make(Population[*chromosome.Vector[float64]], len(fitness))
	for i, f := range fitness {
		v, err := chromosome.VectorOf(float64(i))
		require.NoError(t, err)
		v.Fitness = f
		pop[i] = v
	}
	return pop
}

func TestNewReal_OneDrawPerGene(t *testing.T) {
	template, err := chromosome.NewVector[float64](3)
	require.NoError(t, err)
	rng := &countingSource{Source: random.New(42)}

	pop, err := NewReal(template, 10, nil, rng)
	require.NoError(t, err)
	assert.Len(t, pop, 10)
	assert.Equal(t, 30, rng.calls)

	for _, c := range pop {
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, chromosome.Unevaluated(), *c.Scores())
		assert.NotSame(t, template, c)
	}
	assert.Equal(t, []float64{0, 0, 0}, template.Values(), "template is not modified")
}

func TestNewReal_BoundedTemplateClamps(t *testing.T) {
	template, err := chromosome.NewBounded(5, -1.0, 1.0)
	require.NoError(t, err)
	wide := func(rng random.Source) float64 { return rng.Uniform(-100, 100) }

	pop, err := NewReal(template, 50, wide, random.New(7))
	require.NoError(t, err)
	for _, c := range pop {
		for _, v := range c.Values() {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestNewBitwise_SetsEveryBit(t *testing.T) {
	template, err := chromosome.NewBinary(2, 0, 15, 0)
	require.NoError(t, err)
	rng := &countingSource{Source: random.New(1)}

	pop, err := NewBitwise(template, 4, nil, rng)
	require.NoError(t, err)
	assert.Equal(t, 4*8, rng.calls)

	ones, err := GetBits("ones")
	require.NoError(t, err)
	pop, err = NewBitwise(template, 2, ones, rng)
	require.NoError(t, err)
	for _, c := range pop {
		assert.Equal(t, []float64{15, 15}, c.Values())
	}
}

func TestFactory_RejectsEmptyPopulation(t *testing.T) {
	template, _ := chromosome.NewVector[float64](1)
	_, err := NewReal(template, 0, nil, random.New(1))
	assert.ErrorIs(t, err, ErrInvalidSize)

	bits, _ := chromosome.NewBitVector(1)
	_, err = NewBitwise(bits, -1, nil, random.New(1))
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestBestIndex_FirstMaximumWins(t *testing.T) {
	pop := withFitness(t, 1, 7, 3, 7, -2)
	assert.Equal(t, 1, BestIndex(pop))
	assert.Same(t, pop[1], Best(pop))
}

func TestSummarize(t *testing.T) {
	pop := withFitness(t, 2, 4, 4, 4, 5, 5, 7, 9)
	s := Summarize(pop)
	assert.Equal(t, 9.0, s.Best)
	assert.Equal(t, 2.0, s.Worst)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.138089935, s.StdDev, 1e-9) // sample standard deviation

	single := Summarize(withFitness(t, 3))
	assert.Equal(t, Summary{Best: 3, Worst: 3, Mean: 3}, single)
	assert.Equal(t, Summary{}, Summarize(Population[*chromosome.Vector[float64]]{}))
}

func TestClone_Deep(t *testing.T) {
	pop := withFitness(t, 1, 2)
	cp := Clone(pop)
	cp[0].Set(0, 99)
	assert.Equal(t, 0.0, pop[0].At(0))
	assert.Equal(t, "{{0}, {1}}", String(pop))
}

func TestInitializerRegistry(t *testing.T) {
	assert.Equal(t, []string{"lower", "normal", "uniform", "upper"}, RealNames())
	assert.Equal(t, []string{"coin", "ones", "zeros"}, BitNames())

	f, err := GetReal("uniform")
	require.NoError(t, err)
	gen := f(-10, -5)
	rng := random.New(3)
	for i := 0; i < 100; i++ {
		v := gen(rng)
		assert.GreaterOrEqual(t, v, -10.0)
		assert.Less(t, v, -5.0)
	}

	upper, err := GetReal("upper")
	require.NoError(t, err)
	assert.Equal(t, 4.0, upper(-2, 4)(rng))

	_, err = GetReal("nonexistent")
	assert.Error(t, err)
	_, err = GetBits("nonexistent")
	assert.Error(t, err)
}
