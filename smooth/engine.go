package smooth

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-bandpass/calsol"
)

// Engine smooths bandpass solutions. It holds only validated configuration
// and is safe for concurrent use.
type Engine struct {
	cfg   Config
	steps []Step
}

// NewEngine validates the configuration built from opts. Schedule and
// degree mismatches are reported here, before any data is touched.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := ApplyOptions(opts...)

	steps, err := cfg.steps()
	if err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg, steps: steps}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Smooth flags the configured channels, picks (or checks) the reference
// antenna and runs the engine. It returns the smoothed solution and the
// reference antenna used.
func (e *Engine) Smooth(ctx context.Context, raw *calsol.Bandpass) (*calsol.Bandpass, int, error) {
	if raw == nil {
		return nil, -1, fmt.Errorf("%w: nil bandpass", ErrConfig)
	}

	flagged := raw
	if len(e.cfg.ChannelMask) > 0 {
		var err error
		if flagged, err = calsol.ApplyChannelFlags(raw, e.cfg.ChannelMask); err != nil {
			return nil, -1, err
		}

		logger.Debugf(ctx, "flagged channels %s", e.cfg.ChannelMask)
	}

	ref := e.cfg.Reference
	if ref < 0 {
		var err error
		if ref, err = SelectReference(flagged, e.cfg.Solution); err != nil {
			return nil, -1, err
		}
	} else if err := CheckReference(flagged, e.cfg.Solution, ref); err != nil {
		return nil, -1, err
	}

	logger.Infof(ctx, "reference antenna %d (%.1f%% flagged)", ref, 100*InvalidFraction(flagged, e.cfg.Solution, ref))

	out, err := e.Run(ctx, flagged, ref)
	if err != nil {
		return nil, -1, err
	}

	return out, ref, nil
}

// Run smooths the configured polarizations (by default the
// co-polarizations) of every antenna against the reference antenna ref. The
// result has a single solution interval; other polarizations and curves
// without valid samples are NaN.
func (e *Engine) Run(ctx context.Context, raw *calsol.Bandpass, ref int) (*calsol.Bandpass, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil bandpass", ErrConfig)
	}

	sol := e.cfg.Solution
	if err := CheckReference(raw, sol, ref); err != nil {
		return nil, err
	}

	out, err := calsol.NewNaN(1, raw.NAnt, raw.NChan, raw.NPol)
	if err != nil {
		return nil, err
	}

	pols, err := e.cfg.polarizations(raw.NPol)
	if err != nil {
		return nil, err
	}

	refCurves := make(map[int][]complex128, len(pols))
	for _, pol := range pols {
		refCurves[pol] = raw.Curve(sol, ref, pol)
	}

	var (
		sinkMu   sync.Mutex
		sinkErrs *multierror.Error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

dispatch:
	for ant := range raw.NAnt {
		for _, pol := range pols {
			if gctx.Err() != nil {
				break dispatch
			}

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				diag, err := e.smoothUnit(raw, out, ant, pol, ref, refCurves[pol])
				if err != nil {
					return fmt.Errorf("smooth: antenna %d pol %d: %w", ant, pol, err)
				}

				if e.cfg.Sink == nil {
					return nil
				}

				if err := e.cfg.Sink.Observe(gctx, diag); err != nil {
					sinkMu.Lock()
					sinkErrs = multierror.Append(sinkErrs, fmt.Errorf("antenna %d pol %d: %w", ant, pol, err))
					sinkMu.Unlock()
				}

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := sinkErrs.ErrorOrNil(); err != nil {
		logger.Warnf(ctx, "diagnostics failed for %d units: %v", len(sinkErrs.Errors), err)
	}

	logger.Debugf(ctx, "smoothed %d antennas x %d polarizations against antenna %d", raw.NAnt, len(pols), ref)

	return out, nil
}

func (e *Engine) smoothUnit(raw, out *calsol.Bandpass, ant, pol, ref int, refCurve []complex128) (UnitDiagnostics, error) {
	curve := raw.Curve(e.cfg.Solution, ant, pol)

	amp, err := SmoothAmplitude(curve, e.steps, e.cfg.Loops)
	if err != nil {
		return UnitDiagnostics{}, fmt.Errorf("amplitude: %w", err)
	}

	phase, err := SmoothPhase(curve, refCurve, e.cfg.PhaseSigma, e.cfg.PhaseLoops)
	if err != nil {
		return UnitDiagnostics{}, fmt.Errorf("phase: %w", err)
	}

	smoothed := Combine(amp.Smooth, phase.Smooth)
	out.SetCurve(0, ant, pol, smoothed)

	diag := UnitDiagnostics{
		Antenna:      ant,
		Polarization: pol,
		Reference:    ref,
		Amplitude:    amp,
		Phase:        phase,
		Smoothed:     smoothed,
	}
	diag.summarize()

	return diag, nil
}

// Combine returns amp·exp(i·phase) per channel, NaN where either is NaN.
func Combine(amp, phase []float64) []complex128 {
	out := make([]complex128, len(amp))
	for i := range out {
		if math.IsNaN(amp[i]) || math.IsNaN(phase[i]) {
			out[i] = calsol.NaN()
			continue
		}

		out[i] = cmplx.Rect(amp[i], phase[i])
	}

	return out
}
