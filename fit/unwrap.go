package fit

import "math"

// Unwrap returns a copy of seq with jumps of more than a quarter period
// folded back by whole periods. See [UnwrapInPlace].
func Unwrap(seq []float64, period float64) []float64 {
	out := make([]float64, len(seq))
	copy(out, seq)
	UnwrapInPlace(out, period)

	return out
}

// UnwrapInPlace walks seq from left to right, tracking the last non-NaN
// value it emitted. A sample further than period/4 from that value is
// shifted by the nearest whole number of periods towards it. NaN samples
// pass through and do not reset the tracked value. A non-positive period
// leaves seq untouched.
func UnwrapInPlace(seq []float64, period float64) {
	if !(period > 0) || len(seq) == 0 {
		return
	}

	quarter := period / 4
	last := seq[0]

	for i := 1; i < len(seq); i++ {
		cur := seq[i]
		if math.IsNaN(cur) {
			continue
		}

		if !math.IsNaN(last) {
			if d := cur - last; math.Abs(d) > quarter {
				cur -= math.Round(d/period) * period
				seq[i] = cur
			}
		}

		last = cur
	}
}
