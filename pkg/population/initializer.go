package population

import (
	"fmt"
	"maps"
	"slices"

	"github.com/wildfunctions/evolve/pkg/random"
)

// RealFactory builds a gene initializer for the range [low, high].
// Initializers that ignore the range may discard it.
type RealFactory func(low, high float64) RealInit

var (
	realRegistry = map[string]RealFactory{}
	bitRegistry  = map[string]BitInit{}
)

func init() {
	RegisterReal("normal", func(_, _ float64) RealInit { return Normal })
	RegisterReal("uniform", func(low, high float64) RealInit {
		return func(rng random.Source) float64 { return rng.Uniform(low, high) }
	})
	RegisterReal("lower", func(low, _ float64) RealInit {
		return func(random.Source) float64 { return low }
	})
	RegisterReal("upper", func(_, high float64) RealInit {
		return func(random.Source) float64 { return high }
	})

	RegisterBits("coin", Coin)
	RegisterBits("zeros", func(random.Source) bool { return false })
	RegisterBits("ones", func(random.Source) bool { return true })
}

// RegisterReal adds a named real-gene initializer.
func RegisterReal(name string, f RealFactory) {
	realRegistry[name] = f
}

// GetReal returns the real-gene initializer registered under name.
func GetReal(name string) (RealFactory, error) {
	f, ok := realRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown real initializer: %s", name)
	}
	return f, nil
}

// RealNames returns all registered real-gene initializer names, sorted.
func RealNames() []string {
	return slices.Sorted(maps.Keys(realRegistry))
}

// RegisterBits adds a named bit initializer.
func RegisterBits(name string, f BitInit) {
	bitRegistry[name] = f
}

// GetBits returns the bit initializer registered under name.
func GetBits(name string) (BitInit, error) {
	f, ok := bitRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown bit initializer: %s", name)
	}
	return f, nil
}

// BitNames returns all registered bit initializer names, sorted.
func BitNames() []string {
	return slices.Sorted(maps.Keys(bitRegistry))
}
