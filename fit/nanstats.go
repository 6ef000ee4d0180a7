package fit

import (
	"math"

	"github.com/montanaflynn/stats"
)

// CountValid returns the number of finite samples in v.
func CountValid(v []float64) int {
	n := 0
	for _, x := range v {
		if isFinite(x) {
			n++
		}
	}

	return n
}

// Finite returns the finite samples of v in order.
func Finite(v []float64) []float64 {
	out := make([]float64, 0, len(v))
	for _, x := range v {
		if isFinite(x) {
			out = append(out, x)
		}
	}

	return out
}

// NaNStd returns the population standard deviation of the finite samples of
// v, or NaN when there are none.
func NaNStd(v []float64) float64 {
	sd, err := stats.StandardDeviationPopulation(Finite(v))
	if err != nil {
		return math.NaN()
	}

	return sd
}

// NaNMedian returns the median of the finite samples of v, or NaN when there
// are none.
func NaNMedian(v []float64) float64 {
	med, err := stats.Median(Finite(v))
	if err != nil {
		return math.NaN()
	}

	return med
}

// Range returns a ramp 0, 1, ..., n-1.
func Range(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// validPairs returns the (x, y) pairs whose y is not NaN.
func validPairs(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(y))
	ys := make([]float64, 0, len(y))

	for i, v := range y {
		if !math.IsNaN(v) {
			xs = append(xs, x[i])
			ys = append(ys, v)
		}
	}

	return xs, ys
}

// leaveOneOutStd computes, for every non-NaN residual, the population
// standard deviation of the remaining non-NaN residuals. Entries for NaN
// residuals are NaN. Fewer than three residuals yield all NaN.
func leaveOneOutStd(dst, residual []float64) {
	valid := Finite(residual)
	m := len(valid)

	for i := range dst {
		dst[i] = math.NaN()
	}

	if m < 3 {
		return
	}

	mean, err := stats.Mean(valid)
	if err != nil {
		return
	}

	variance, err := stats.PopulationVariance(valid)
	if err != nil {
		return
	}

	n := float64(m)
	m2 := variance * n

	for i, r := range residual {
		if math.IsNaN(r) {
			continue
		}

		// Welford downdate of (mean, M2) with r removed.
		meanOut := (n*mean - r) / (n - 1)
		m2Out := m2 - (r-mean)*(r-meanOut)
		if m2Out < 0 {
			m2Out = 0
		}

		dst[i] = math.Sqrt(m2Out / (n - 1))
	}
}
