package smooth

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-bandpass/calsol"
	"github.com/cwbudde/algo-bandpass/fit"
)

// AmplitudeFit is the outcome of smoothing one amplitude curve.
type AmplitudeFit struct {
	// Raw is |gain| per channel, NaN where the gain is not finite.
	Raw []float64
	// Fit is the result of the last schedule step.
	Fit fit.Result
	// Smooth is the smoothed amplitude per channel.
	Smooth []float64
}

// SmoothAmplitude fits |curve| with each step in turn, running loops
// clipping passes per step and handing the cleaned samples to the next
// step. The last step's polynomial is the smooth amplitude.
func SmoothAmplitude(curve []complex128, steps []Step, loops int) (AmplitudeFit, error) {
	amp := Magnitude(curve)
	x := fit.Range(len(curve))

	var last fit.Result

	work := amp
	for _, step := range steps {
		res, err := fit.FitIterative(work, x, step.Degree, step.Sigma, loops)
		if err != nil {
			return AmplitudeFit{}, err
		}

		last = res
		work = res.Cleaned

		if res.Degenerate {
			break
		}
	}

	return AmplitudeFit{Raw: amp, Fit: last, Smooth: last.Fitted}, nil
}

// Magnitude returns |v| for every sample, with NaN for non-finite samples.
func Magnitude(curve []complex128) []float64 {
	re := make([]float64, len(curve))
	im := make([]float64, len(curve))

	for i, v := range curve {
		if calsol.IsValid(v) {
			re[i], im[i] = real(v), imag(v)
		} else {
			re[i], im[i] = math.NaN(), math.NaN()
		}
	}

	out := make([]float64, len(curve))
	vecmath.Magnitude(out, re, im)

	return out
}
