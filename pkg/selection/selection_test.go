package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfunctions/evolve/pkg/chromosome"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/random"
	"github.com/wildfunctions/evolve/pkg/random/randomtest"
)

type vec = *chromosome.Vector[float64]

// scored builds individuals whose only gene is their index, with the given
// fitness and the dual penalty.
func scored(t *testing.T, fitness ...float64) population.Population[vec] {
	t.Helper()
	pop := make(population.Population[vec], len(fitness))
	for i, f := range fitness {
		v, err := chromosome.VectorOf(float64(i))
		require.NoError(t, err)
		v.Fitness, v.Penalty = f, -f
		pop[i] = v
	}
	return pop
}

func TestNewTournament_Validation(t *testing.T) {
	_, err := NewTournament[vec](0)
	assert.ErrorIs(t, err, ErrInvalidTournament)

	tr, err := NewTournament[vec](3)
	require.NoError(t, err)
	assert.NoError(t, tr.Check(3))
	assert.ErrorIs(t, tr.Check(2), ErrInvalidTournament)
}

func TestTournament_FullSizeReturnsBest(t *testing.T) {
	rng := random.New(99)
	for trial := 0; trial < 50; trial++ {
		fit := make([]float64, 10)
		for i := range fit {
			fit[i] = rng.Uniform(-100, 100)
		}
		pop := scored(t, fit...)
		tr, err := NewTournament[vec](len(pop))
		require.NoError(t, err)
		assert.Same(t, population.Best(pop), tr.Select(pop, rng))
	}
}

func TestTournament_FirstSeenWinsTies(t *testing.T) {
	pop := scored(t, 1, 5, 5, 2)
	tr, err := NewTournament[vec](3)
	require.NoError(t, err)

	got := tr.Select(pop, &randomtest.Scripted{Ints: []int{2, 1, 0}})
	assert.Same(t, pop[2], got)

	got = tr.Select(pop, &randomtest.Scripted{Ints: []int{0, 3, 1}})
	assert.Same(t, pop[1], got)
}

func TestTournament_DoesNotModifyPopulation(t *testing.T) {
	pop := scored(t, 3, 1, 2)
	before := population.String(pop)
	tr, _ := NewTournament[vec](2)
	for i := 0; i < 20; i++ {
		tr.Select(pop, random.New(uint64(i+1)))
	}
	assert.Equal(t, before, population.String(pop))
	assert.Equal(t, []float64{3, 1, 2}, population.Fitnesses(pop))
}

func TestRouletteWheel_CumulativeWalk(t *testing.T) {
	// |fitness| = 1, 3, 6, total 10: boundaries at 0.1 and 0.4.
	pop := scored(t, -1, 3, -6)
	rw := NewRouletteWheel[vec](true)

	cases := []struct {
		draw float64
		want int
	}{
		{0.0, 0}, {0.099, 0}, {0.1, 1}, {0.39, 1}, {0.4, 2}, {0.999, 2},
	}
	for _, tc := range cases {
		got := rw.Select(pop, &randomtest.Scripted{Uniforms: []float64{tc.draw}})
		assert.Same(t, pop[tc.want], got, "draw %v", tc.draw)
	}
}

func TestRouletteWheel_UsesPenalty(t *testing.T) {
	pop := scored(t, 0, 0, 0)
	pop[0].Penalty = 9
	pop[1].Penalty = 1
	pop[2].Penalty = 0
	rw := NewRouletteWheel[vec](false)

	got := rw.Select(pop, &randomtest.Scripted{Uniforms: []float64{0.85}})
	assert.Same(t, pop[0], got)
	got = rw.Select(pop, &randomtest.Scripted{Uniforms: []float64{0.95}})
	assert.Same(t, pop[1], got)
}

func TestRouletteWheel_SkipsUnevaluated(t *testing.T) {
	rw := NewRouletteWheel[vec](true)
	rng := random.New(17)

	one := scored(t, -1, 0, -1, -2, -3)
	one[1].Scores().Reset()
	twoFirst := scored(t, 0, 0, -1, -2, -3)
	twoFirst[0].Scores().Reset()
	twoFirst[1].Scores().Reset()

	for _, pop := range []population.Population[vec]{one, twoFirst} {
		seen := map[vec]int{}
		for i := 0; i < 1000; i++ {
			got := rw.Select(pop, rng)
			require.NotEqual(t, chromosome.Unevaluated(), *got.Scores())
			seen[got]++
		}
		assert.Greater(t, len(seen), 1, "selection collapsed onto one individual")
	}

	// |fitness| over the evaluated ones is 1, 2, 3: boundaries at 1/6 and 1/2.
	got := rw.Select(twoFirst, &randomtest.Scripted{Uniforms: []float64{0.1}})
	assert.Same(t, twoFirst[2], got)
	got = rw.Select(twoFirst, &randomtest.Scripted{Uniforms: []float64{0.4}})
	assert.Same(t, twoFirst[3], got)

	pending := scored(t, 0, 0)
	for _, c := range pending {
		c.Scores().Reset()
	}
	assert.Same(t, pending[1], rw.Select(pending, &randomtest.Scripted{}))
}

func TestRouletteWheel_FallsBackToLast(t *testing.T) {
	rw := NewRouletteWheel[vec](true)

	zeros := scored(t, 0, 0, 0)
	assert.Same(t, zeros[2], rw.Select(zeros, &randomtest.Scripted{}))

	pop := scored(t, 1, 1)
	assert.Same(t, pop[1], rw.Select(pop, &randomtest.Scripted{Uniforms: []float64{1}}))

	assert.ErrorIs(t, rw.Check(0), ErrEmptyPopulation)
	assert.NoError(t, rw.Check(1))
}
