package random

import (
	"errors"
	"fmt"
)

// ErrInvalidWeights is returned when a weight list is empty or holds a
// non-positive entry.
var ErrInvalidWeights = errors.New("invalid weights")

// Normalize turns weights into probabilities that sum to one.
func Normalize(weights []float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidWeights)
	}
	var sum float64
	for i, w := range weights {
		if !(w > 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrInvalidWeights, i, w)
		}
		sum += w
	}
	probs := make([]float64, len(weights))
	for i, w := range weights {
		probs[i] = w / sum
	}
	return probs, nil
}

// Pick draws one uniform value and walks the cumulative distribution of
// probs, returning the first index whose cumulative mass exceeds the draw.
// Rounding at the upper edge falls back to the last index.
func Pick(src Source, probs []float64) int {
	r := src.Uniform(0, 1)
	var cumulative float64
	for i, p := range probs {
		cumulative += p
		if r < cumulative {
			return i
		}
	}
	return len(probs) - 1
}
