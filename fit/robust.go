package fit

import (
	"fmt"
	"math"
)

// resolution is the relative residual magnitude below which a sample is
// considered to lie on the fit and is never clipped.
const resolution = 1e-10

// Result holds the outcome of an iterative fit.
type Result struct {
	// Coefficients of the last fit, highest power first.
	Coefficients []float64
	// Fitted is the last fit evaluated at every x.
	Fitted []float64
	// Cleaned is the input with every rejected sample replaced by NaN.
	Cleaned []float64
	// Degree is the degree of the last fit after clamping to the number of
	// available samples.
	Degree int
	// Degenerate is set when no valid samples were available. Coefficients
	// is then [0] and Fitted is all NaN.
	Degenerate bool
}

// FitIterative fits a polynomial of the given degree to the non-NaN samples
// of values and rejects outliers, loops times:
//
//  1. least-squares fit over the samples still present,
//  2. residual = values - fit(x),
//  3. every sample with |residual| > sigma*std is set to NaN, where std is
//     the standard deviation of the other remaining residuals, but at
//     least sqrt((m-1)/m) times the standard deviation of all m of them.
//
// When fewer than degree+1 samples remain the degree is reduced to
// samples-1. Inf samples are treated as NaN.
func FitIterative(values, x []float64, degree int, sigma float64, loops int) (Result, error) {
	if len(values) != len(x) {
		return Result{}, fmt.Errorf("%w: len(values)=%d, len(x)=%d", ErrInvalidArgument, len(values), len(x))
	}

	if degree < 0 || loops < 1 || !(sigma > 0) {
		return Result{}, fmt.Errorf("%w: degree=%d sigma=%g loops=%d", ErrInvalidArgument, degree, sigma, loops)
	}

	cleaned := make([]float64, len(values))
	for i, v := range values {
		if isFinite(v) {
			cleaned[i] = v
		} else {
			cleaned[i] = math.NaN()
		}
	}

	fitted := make([]float64, len(values))

	if CountValid(cleaned) == 0 {
		for i := range fitted {
			fitted[i] = math.NaN()
		}

		return Result{
			Coefficients: []float64{0},
			Fitted:       fitted,
			Cleaned:      cleaned,
			Degenerate:   true,
		}, nil
	}

	var (
		coeffs    []float64
		effDegree int
	)

	residual := make([]float64, len(values))
	scale := make([]float64, len(values))

	for range loops {
		xs, ys := validPairs(x, cleaned)
		if len(ys) == 0 {
			break
		}

		effDegree = min(degree, len(ys)-1)

		c, err := Polyfit(xs, ys, effDegree)
		if err != nil {
			return Result{}, err
		}

		coeffs = c
		PolyvalInto(fitted, coeffs, x)

		floor := 0.0
		for _, v := range ys {
			floor = math.Max(floor, math.Abs(v))
		}

		floor *= resolution

		for i, v := range cleaned {
			residual[i] = v - fitted[i]
		}

		leaveOneOutStd(scale, residual)

		// The leave-one-out spread of a handful of residuals can collapse
		// towards zero; it never drops below the shrunk full-set spread.
		m := float64(CountValid(residual))
		minScale := NaNStd(residual) * math.Sqrt((m-1)/m)

		rejected := 0
		for i, r := range residual {
			if math.IsNaN(r) || math.IsNaN(scale[i]) {
				continue
			}

			if a := math.Abs(r); a > sigma*math.Max(scale[i], minScale) && a > floor {
				cleaned[i] = math.NaN()
				rejected++
			}
		}

		if rejected == 0 {
			break
		}
	}

	return Result{
		Coefficients: coeffs,
		Fitted:       fitted,
		Cleaned:      cleaned,
		Degree:       effDegree,
	}, nil
}
