package benchmark

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownMinima(t *testing.T) {
	origin := []float64{0, 0, 0}
	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{"sphere", origin, 0},
		{"ackley", origin, 0},
		{"alpinen1", origin, 0},
		{"exponential", origin, -1},
		{"griewank", origin, 0},
		{"rastrigin", origin, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Get(tt.name)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, f.Eval(tt.x), 1e-12)
			assert.Equal(t, tt.want, f.Optimum(len(tt.x)))
		})
	}

	onemax, err := Get("onemax")
	require.NoError(t, err)
	assert.Equal(t, 3.0, onemax.Eval([]float64{1, 0, 1, 1}))
	assert.Equal(t, 4.0, onemax.Optimum(4))
}

func TestValues(t *testing.T) {
	assert.Equal(t, 14.0, Sphere([]float64{1, 2, 3}))
	assert.InDelta(t, 2.0, Rastrigin([]float64{1, 1}), 1e-12)
	assert.InDelta(t, 0.1*math.Pi, AlpineN1([]float64{-math.Pi}), 1e-12)
	assert.InDelta(t, -math.Exp(-1), Exponential([]float64{1, 1}), 1e-15)
	assert.Equal(t, 0.0, AckleyN4([]float64{5}))
	assert.True(t, math.IsNaN(AlpineN2([]float64{-1})))

	// Griewank with i counted from one stays finite at the first gene.
	assert.InDelta(t, 1+1.0/4000-math.Cos(1), Griewank([]float64{1}), 1e-12)
}

func TestAckleyN4_TwoDimensionalOptimum(t *testing.T) {
	f, err := Get("ackleyn4")
	require.NoError(t, err)
	assert.InDelta(t, f.Optimum(2), f.Eval([]float64{-1.51, -0.755}), 1e-2)
	assert.True(t, math.IsNaN(f.Optimum(3)))
}

func TestAlpineN2_MaximumNearKnownPoint(t *testing.T) {
	f, err := Get("alpinen2")
	require.NoError(t, err)
	assert.True(t, f.Maximize)
	assert.InDelta(t, f.Optimum(2), f.Eval([]float64{7.917, 7.917}), 1e-2)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{
		"ackley", "ackleyn4", "alpinen1", "alpinen2", "exponential",
		"griewank", "onemax", "rastrigin", "sphere",
	}, Names())
	for _, name := range Names() {
		f, _ := Get(name)
		assert.LessOrEqual(t, f.Lower, f.Upper, name)
		assert.NotNil(t, f.Eval, name)
	}
	_, err := Get("himmelblau")
	assert.Error(t, err)
}

func TestCounter(t *testing.T) {
	c := NewCounter(Sphere)
	assert.Equal(t, 5.0, c.Eval([]float64{1, 2}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Eval([]float64{1})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(801), c.Calls())
}
