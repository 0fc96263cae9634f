package random

import (
	"math/rand/v2"
	"sync"
)

// Source provides the random draws consumed by factories and operators.
type Source interface {
	// Uniform returns a draw in [min(low, high), max(low, high)).
	Uniform(low, high float64) float64
	// Normal returns a draw from N(mean, stddev²).
	Normal(mean, stddev float64) float64
	// Boolean returns a fair coin flip.
	Boolean() bool
	// IntN returns a uniform index in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Rand is a Source backed by a PCG generator.
type Rand struct {
	r *rand.Rand
}

// New returns a Source seeded with seed. A zero seed picks a random one.
func New(seed uint64) *Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Rand) Uniform(low, high float64) float64 {
	if high < low {
		low, high = high, low
	}
	return low + r.r.Float64()*(high-low)
}

func (r *Rand) Normal(mean, stddev float64) float64 {
	return mean + stddev*r.r.NormFloat64()
}

func (r *Rand) Boolean() bool {
	return r.r.IntN(2) == 1
}

func (r *Rand) IntN(n int) int {
	return r.r.IntN(n)
}

// Locked serializes access to a Source shared between goroutines.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src so every draw holds a mutex.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

func (l *Locked) Uniform(low, high float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uniform(low, high)
}

func (l *Locked) Normal(mean, stddev float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Normal(mean, stddev)
}

func (l *Locked) Boolean() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Boolean()
}

func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}
