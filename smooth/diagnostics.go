package smooth

import (
	"context"
	"math"

	"github.com/cwbudde/algo-bandpass/fit"
)

// UnitDiagnostics describes how one (antenna, polarization) curve was
// smoothed. Slices are owned by the receiver.
type UnitDiagnostics struct {
	Antenna      int
	Polarization int
	Reference    int
	Amplitude    AmplitudeFit
	Phase        PhaseFit
	Smoothed     []complex128

	// MedianAmplitude is the median of the valid raw amplitudes.
	MedianAmplitude float64
	// ResidualStd is the spread of the kept amplitude samples about the fit.
	ResidualStd float64
	// Clipped counts samples rejected by amplitude clipping.
	Clipped int
}

// summarize fills the scalar fields of d from its amplitude fit.
func (d *UnitDiagnostics) summarize() {
	a := d.Amplitude
	d.MedianAmplitude = fit.NaNMedian(a.Raw)
	d.Clipped = fit.CountValid(a.Raw) - fit.CountValid(a.Fit.Cleaned)

	residual := make([]float64, len(a.Fit.Cleaned))
	for i, v := range a.Fit.Cleaned {
		residual[i] = math.NaN()
		if i < len(a.Smooth) {
			residual[i] = v - a.Smooth[i]
		}
	}

	d.ResidualStd = fit.NaNStd(residual)
}

// DiagnosticSink consumes per-unit diagnostics. Observe is called
// concurrently from the engine's workers; its error is reported but never
// affects the smoothed result.
type DiagnosticSink interface {
	Observe(ctx context.Context, d UnitDiagnostics) error
}

// DiagnosticSinkFunc adapts a function to DiagnosticSink.
type DiagnosticSinkFunc func(ctx context.Context, d UnitDiagnostics) error

// Observe calls f.
func (f DiagnosticSinkFunc) Observe(ctx context.Context, d UnitDiagnostics) error {
	return f(ctx, d)
}
