package pricing

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// QuantileCutoff is the cumulative Poisson mass used to bound the demand
// summation of a single period.
const QuantileCutoff = 0.9999

// MaxQuantileSteps bounds PoissonQuantile for q >= 1 or when rounding keeps
// the accumulated mass just below q.
const MaxQuantileSteps = 1 << 16

// maxExactFactorial is the largest n for which n! is finite in float64.
const maxExactFactorial = 170

// DotProduct sums a[i]*b[i] over the shared prefix of a and b. Extra
// elements of the longer slice are ignored.
func DotProduct(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	return floats.Dot(a[:n], b[:n])
}

// Sigmoid is the logistic function 1/(1+e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// CompetitorRank is the number of competitor prices at or below price.
func CompetitorRank(price float64, competitors []float64) int {
	rank := len(competitors)
	for _, c := range competitors {
		if price < c {
			rank--
		}
	}
	return rank
}

// Factorial returns n! as a float64; n <= 0 yields 1.
func Factorial(n int) float64 {
	if n <= 0 {
		return 1
	}
	return float64(n) * Factorial(n-1)
}

// PoissonPDF is P(X = i) for X ~ Poisson(mu).
func PoissonPDF(i int, mu float64) float64 {
	if i < 0 {
		return 0
	}
	if i <= maxExactFactorial {
		p := math.Pow(mu, float64(i)) / Factorial(i) * math.Exp(-mu)
		if !math.IsInf(p, 0) && !math.IsNaN(p) {
			return p
		}
	}
	if mu <= 0 {
		return 0
	}
	lg, _ := math.Lgamma(float64(i + 1))
	return math.Exp(float64(i)*math.Log(mu) - lg - mu)
}

// PoissonQuantile accumulates Poisson(mu) mass from i = 0 until it reaches q
// and returns the number of terms summed, i.e. one past the smallest i with
// CDF(i) >= q. PoissonQuantile(0, q) is 1 for any q in (0, 1].
func PoissonQuantile(mu, q float64) int {
	sum := 0.0
	i := 0
	for sum < q && i < MaxQuantileSteps {
		pdf := PoissonPDF(i, mu)
		sum += pdf
		i++
		// Past the mode the pdf only shrinks; once it underflows nothing
		// more can be added.
		if pdf == 0 && float64(i) > mu {
			break
		}
	}
	return i
}

// PoissonCDF is P(X <= k) for X ~ Poisson(mu); k < 0 yields 0.
func PoissonCDF(k int, mu float64) float64 {
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += PoissonPDF(i, mu)
	}
	return math.Min(sum, 1)
}
