package smooth

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/cwbudde/algo-bandpass/calsol"
)

// Config defines the smoothing parameters.
type Config struct {
	// MaxDegree is the highest amplitude polynomial degree.
	MaxDegree int
	// Loops is the number of clipping passes per amplitude step.
	Loops int
	// Schedule maps amplitude degrees to clipping thresholds.
	Schedule Schedule
	// PhaseSigma and PhaseLoops control the linear phase fit.
	PhaseSigma float64
	PhaseLoops int
	// Solution selects the solution interval to smooth.
	Solution int
	// Reference is the reference antenna; negative selects it automatically.
	Reference int
	// Workers bounds the number of units smoothed concurrently.
	Workers int
	// Polarizations lists the polarizations to smooth; nil selects
	// [CoPolarizations]. Every other polarization is written as NaN.
	Polarizations []int
	// ChannelMask is flagged before smoothing by [Engine.Smooth].
	ChannelMask calsol.ChannelMask
	// Sink receives per-unit diagnostics; nil disables them.
	Sink DiagnosticSink
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults used by the calibration pipeline.
func DefaultConfig() Config {
	return Config{
		MaxDegree:  3,
		Loops:      3,
		Schedule:   DefaultSchedule(),
		PhaseSigma: 3,
		PhaseLoops: 3,
		Reference:  -1,
		Workers:    runtime.NumCPU(),
	}
}

// WithMaxDegree sets the highest amplitude polynomial degree.
func WithMaxDegree(deg int) Option {
	return func(cfg *Config) {
		cfg.MaxDegree = deg
	}
}

// WithLoops sets the clipping passes per amplitude step.
func WithLoops(loops int) Option {
	return func(cfg *Config) {
		cfg.Loops = loops
	}
}

// WithSchedule replaces the amplitude degree/sigma schedule.
func WithSchedule(s Schedule) Option {
	return func(cfg *Config) {
		cfg.Schedule = s
	}
}

// WithPhaseClipping sets the sigma threshold and passes of the phase fit.
func WithPhaseClipping(sigma float64, loops int) Option {
	return func(cfg *Config) {
		cfg.PhaseSigma = sigma
		cfg.PhaseLoops = loops
	}
}

// WithSolution selects the solution interval.
func WithSolution(sol int) Option {
	return func(cfg *Config) {
		cfg.Solution = sol
	}
}

// WithReferenceAntenna fixes the reference antenna instead of selecting it.
func WithReferenceAntenna(ant int) Option {
	return func(cfg *Config) {
		cfg.Reference = ant
	}
}

// WithWorkers bounds concurrency. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithPolarizations overrides the polarizations that are smoothed.
func WithPolarizations(pols ...int) Option {
	return func(cfg *Config) {
		cfg.Polarizations = slices.Clone(pols)
	}
}

// WithChannelMask flags the given channels before smoothing.
func WithChannelMask(mask calsol.ChannelMask) Option {
	return func(cfg *Config) {
		cfg.ChannelMask = mask
	}
}

// WithDiagnostics installs a diagnostics sink.
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(cfg *Config) {
		cfg.Sink = sink
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// steps validates cfg and returns the amplitude steps it selects.
func (cfg Config) steps() ([]Step, error) {
	if cfg.Loops < 1 {
		return nil, fmt.Errorf("%w: loops %d", ErrConfig, cfg.Loops)
	}

	if !(cfg.PhaseSigma > 0) || cfg.PhaseLoops < 1 {
		return nil, fmt.Errorf("%w: phase sigma %g, loops %d", ErrConfig, cfg.PhaseSigma, cfg.PhaseLoops)
	}

	if cfg.Solution < 0 {
		return nil, fmt.Errorf("%w: solution %d", ErrConfig, cfg.Solution)
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: workers %d", ErrConfig, cfg.Workers)
	}

	if cfg.Polarizations != nil {
		if len(cfg.Polarizations) == 0 {
			return nil, fmt.Errorf("%w: empty polarization list", ErrConfig)
		}

		seen := make(map[int]bool, len(cfg.Polarizations))
		for _, pol := range cfg.Polarizations {
			if pol < 0 || seen[pol] {
				return nil, fmt.Errorf("%w: polarizations %v", ErrConfig, cfg.Polarizations)
			}

			seen[pol] = true
		}
	}

	return cfg.Schedule.Upto(cfg.MaxDegree)
}

// polarizations returns the polarizations smoothed for an npol solution.
func (cfg Config) polarizations(npol int) ([]int, error) {
	if cfg.Polarizations == nil {
		return CoPolarizations(npol), nil
	}

	for _, pol := range cfg.Polarizations {
		if pol >= npol {
			return nil, fmt.Errorf("%w: polarization %d, have %d", ErrConfig, pol, npol)
		}
	}

	return cfg.Polarizations, nil
}
