package smooth

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-bandpass/calsol"
	"github.com/cwbudde/algo-bandpass/fit"
)

// phaseDegree is the degree of the phase model: a constant offset plus a
// delay slope.
const phaseDegree = 1

// PhaseFit is the outcome of smoothing one relative phase curve.
type PhaseFit struct {
	// Raw is the wrapped phase relative to the reference, radians.
	Raw []float64
	// Unwrapped is Raw after unwrapping with period 2π.
	Unwrapped []float64
	// Fit is the robust line fit to Unwrapped.
	Fit fit.Result
	// Smooth is the fitted phase per channel, radians.
	Smooth []float64
}

// RelativePhase returns angle(curve/ref) per channel in radians, NaN where
// the ratio is not finite.
func RelativePhase(curve, ref []complex128) []float64 {
	out := make([]float64, len(curve))
	for i := range curve {
		r := curve[i] / ref[i]
		if calsol.IsValid(r) {
			out[i] = cmplx.Phase(r)
		} else {
			out[i] = math.NaN()
		}
	}

	return out
}

// SmoothPhase unwraps the phase of curve relative to ref and fits it with a
// sigma-clipped line.
func SmoothPhase(curve, ref []complex128, sigma float64, loops int) (PhaseFit, error) {
	raw := RelativePhase(curve, ref)
	unwrapped := fit.Unwrap(raw, 2*math.Pi)

	res, err := fit.FitIterative(unwrapped, fit.Range(len(curve)), phaseDegree, sigma, loops)
	if err != nil {
		return PhaseFit{}, err
	}

	return PhaseFit{
		Raw:       raw,
		Unwrapped: unwrapped,
		Fit:       res,
		Smooth:    res.Fitted,
	}, nil
}
