package benchmark

import "math"

// Sphere is Σ xᵢ².
func Sphere(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return s
}

// Ackley returns the Ackley function with the given constants. The usual
// choice is a = 20, b = 0.2, c = 2π.
func Ackley(a, b, c float64) func([]float64) float64 {
	return func(x []float64) float64 {
		var sq, cs float64
		for _, v := range x {
			sq += v * v
			cs += math.Cos(c * v)
		}
		n := float64(len(x))
		return -a*math.Exp(-b*math.Sqrt(sq/n)) - math.Exp(cs/n) + a + math.E
	}
}

// AckleyN4 sums over consecutive gene pairs. It is zero for one gene.
func AckleyN4(x []float64) float64 {
	e02 := math.Exp(-0.2)
	var s float64
	for i := 0; i+1 < len(x); i++ {
		s += e02*math.Hypot(x[i], x[i+1]) + 3*(math.Cos(2*x[i])+math.Sin(2*x[i+1]))
	}
	return s
}

// AlpineN1 is Σ |xᵢ·sin(xᵢ) + 0.1·xᵢ|.
func AlpineN1(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += math.Abs(v*math.Sin(v) + 0.1*v)
	}
	return s
}

// AlpineN2 is Π √xᵢ·sin(xᵢ). Negative genes yield NaN, so keep the
// lower bound at zero.
func AlpineN2(x []float64) float64 {
	p := 1.0
	for _, v := range x {
		p *= math.Sqrt(v) * math.Sin(v)
	}
	return p
}

// Exponential is -exp(-½ Σ xᵢ²).
func Exponential(x []float64) float64 {
	return -math.Exp(-0.5 * Sphere(x))
}

// Griewank is 1 + Σ xᵢ²/4000 − Π cos(xᵢ/√i) with i counted from one.
func Griewank(x []float64) float64 {
	prod := 1.0
	for i, v := range x {
		prod *= math.Cos(v / math.Sqrt(float64(i+1)))
	}
	return 1 + Sphere(x)/4000 - prod
}

// Rastrigin is 10n + Σ (xᵢ² − 10·cos(2π·xᵢ)).
func Rastrigin(x []float64) float64 {
	s := 10 * float64(len(x))
	for _, v := range x {
		s += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return s
}

// OneMax counts the genes that are set. Meant for bit vectors.
func OneMax(x []float64) float64 {
	var s float64
	for _, v := range x {
		if v != 0 {
			s++
		}
	}
	return s
}
