package benchmark

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sync/atomic"
)

// Function describes a benchmark objective with its customary search range.
type Function struct {
	Name string
	Eval func([]float64) float64
	// Lower and Upper bound every gene.
	Lower, Upper float64
	// Maximize is set when the optimum is a maximum.
	Maximize bool
	// Optimum returns the known best value for n genes.
	Optimum func(n int) float64
}

var registry = map[string]Function{}

func init() {
	zero := func(int) float64 { return 0 }

	Register(Function{Name: "sphere", Eval: Sphere, Lower: -10, Upper: 10, Optimum: zero})
	Register(Function{Name: "ackley", Eval: Ackley(20, 0.2, 2*math.Pi), Lower: -32.768, Upper: 32.768, Optimum: zero})
	Register(Function{Name: "ackleyn4", Eval: AckleyN4, Lower: -35, Upper: 35,
		// Only known in two dimensions.
		Optimum: func(n int) float64 {
			if n == 2 {
				return -4.590101633799122
			}
			return math.NaN()
		}})
	Register(Function{Name: "alpinen1", Eval: AlpineN1, Lower: -10, Upper: 10, Optimum: zero})
	Register(Function{Name: "alpinen2", Eval: AlpineN2, Lower: 0, Upper: 10, Maximize: true,
		Optimum: func(n int) float64 { return math.Pow(2.808, float64(n)) }})
	Register(Function{Name: "exponential", Eval: Exponential, Lower: -1, Upper: 1,
		Optimum: func(int) float64 { return -1 }})
	Register(Function{Name: "griewank", Eval: Griewank, Lower: -600, Upper: 600, Optimum: zero})
	Register(Function{Name: "rastrigin", Eval: Rastrigin, Lower: -5.12, Upper: 5.12, Optimum: zero})
	Register(Function{Name: "onemax", Eval: OneMax, Lower: 0, Upper: 1, Maximize: true,
		Optimum: func(n int) float64 { return float64(n) }})
}

// Register adds a benchmark function to the registry.
func Register(f Function) {
	registry[f.Name] = f
}

// Get returns a benchmark function by name.
func Get(name string) (Function, error) {
	f, ok := registry[name]
	if !ok {
		return Function{}, fmt.Errorf("unknown function: %s", name)
	}
	return f, nil
}

// Names returns all registered function names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Counter wraps an objective and counts its invocations. It is safe for
// concurrent use.
type Counter struct {
	fn    func([]float64) float64
	calls atomic.Uint64
}

func NewCounter(fn func([]float64) float64) *Counter {
	return &Counter{fn: fn}
}

// Eval calls the wrapped function.
func (c *Counter) Eval(x []float64) float64 {
	c.calls.Add(1)
	return c.fn(x)
}

func (c *Counter) Calls() uint64 { return c.calls.Load() }
