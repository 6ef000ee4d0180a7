package diagplot

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-vecmath"
	"github.com/facebookincubator/go-belt/tool/logger"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cwbudde/algo-bandpass/fit"
	"github.com/cwbudde/algo-bandpass/smooth"
)

// ErrNoDirectory is returned when a sink is created without an output directory.
var ErrNoDirectory = errors.New("diagplot: output directory required")

const degreesPerRadian = 180 / math.Pi

var (
	clippedColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	fitColor     = color.RGBA{R: 20, G: 90, B: 200, A: 255}
)

// Sink writes diagnostic plots into a directory. It is safe for concurrent
// use; every unit writes its own files.
type Sink struct {
	dir           string
	width, height vg.Length
}

// Option configures a Sink.
type Option func(*Sink)

// WithSize sets the plot size.
func WithSize(width, height vg.Length) Option {
	return func(s *Sink) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

// New creates dir if needed and returns a sink writing into it.
func New(dir string, opts ...Option) (*Sink, error) {
	if dir == "" {
		return nil, ErrNoDirectory
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("diagplot: %w", err)
	}

	s := &Sink{dir: dir, width: 8 * vg.Inch, height: 4 * vg.Inch}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s, nil
}

// Dir returns the output directory.
func (s *Sink) Dir() string {
	return s.dir
}

// FileName returns the base name of the plot of the given kind
// ("amplitude" or "phase") for one unit.
func FileName(ant, pol int, kind string) string {
	return fmt.Sprintf("ant%03d_pol%d_%s.png", ant, pol, kind)
}

// Observe implements [smooth.DiagnosticSink]. Units without a single valid
// sample are skipped.
func (s *Sink) Observe(ctx context.Context, d smooth.UnitDiagnostics) error {
	if fit.CountValid(d.Amplitude.Raw) == 0 {
		logger.Debugf(ctx, "diagplot: antenna %d pol %d has no valid samples", d.Antenna, d.Polarization)
		return nil
	}

	amp, err := AmplitudePlot(d)
	if err != nil {
		return err
	}

	phase, err := PhasePlot(d)
	if err != nil {
		return err
	}

	for kind, p := range map[string]*plot.Plot{"amplitude": amp, "phase": phase} {
		path := filepath.Join(s.dir, FileName(d.Antenna, d.Polarization, kind))
		if err := p.Save(s.width, s.height, path); err != nil {
			return fmt.Errorf("diagplot: save %s: %w", path, err)
		}
	}

	return nil
}

// AmplitudePlot draws the raw amplitude, the samples rejected by clipping
// and the final polynomial.
func AmplitudePlot(d smooth.UnitDiagnostics) (*plot.Plot, error) {
	a := d.Amplitude
	x := fit.Range(len(a.Raw))

	clipped := make([]float64, len(a.Raw))
	for i, v := range a.Raw {
		clipped[i] = math.NaN()
		if !math.IsNaN(v) && i < len(a.Fit.Cleaned) && math.IsNaN(a.Fit.Cleaned[i]) {
			clipped[i] = v
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("antenna %d pol %d amplitude (degree %d)", d.Antenna, d.Polarization, a.Fit.Degree)
	p.X.Label.Text = "channel"
	p.Y.Label.Text = "|g|"

	if err := addSeries(p, x, a.Raw, clipped, a.Smooth); err != nil {
		return nil, err
	}

	return p, nil
}

// PhasePlot draws the unwrapped relative phase and its linear fit, in degrees.
func PhasePlot(d smooth.UnitDiagnostics) (*plot.Plot, error) {
	ph := d.Phase
	x := fit.Range(len(ph.Unwrapped))

	unwrapped := make([]float64, len(ph.Unwrapped))
	vecmath.ScaleBlock(unwrapped, ph.Unwrapped, degreesPerRadian)

	fitted := make([]float64, len(ph.Smooth))
	vecmath.ScaleBlock(fitted, ph.Smooth, degreesPerRadian)

	clipped := make([]float64, len(unwrapped))
	for i, v := range unwrapped {
		clipped[i] = math.NaN()
		if !math.IsNaN(v) && i < len(ph.Fit.Cleaned) && math.IsNaN(ph.Fit.Cleaned[i]) {
			clipped[i] = v
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("antenna %d pol %d phase vs antenna %d", d.Antenna, d.Polarization, d.Reference)
	p.X.Label.Text = "channel"
	p.Y.Label.Text = "phase (deg)"

	if err := addSeries(p, x, unwrapped, clipped, fitted); err != nil {
		return nil, err
	}

	return p, nil
}

func addSeries(p *plot.Plot, x, raw, clipped, fitted []float64) error {
	if pts := Points(x, raw); len(pts) > 0 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("diagplot: raw: %w", err)
		}

		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add("raw", s)
	}

	if pts := Points(x, clipped); len(pts) > 0 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("diagplot: clipped: %w", err)
		}

		s.GlyphStyle.Shape = draw.CrossGlyph{}
		s.GlyphStyle.Radius = vg.Points(2.5)
		s.GlyphStyle.Color = clippedColor
		p.Add(s)
		p.Legend.Add("clipped", s)
	}

	if pts := Points(x, fitted); len(pts) > 0 {
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("diagplot: fit: %w", err)
		}

		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = fitColor
		p.Add(l)
		p.Legend.Add("fit", l)
	}

	p.Legend.Top = true

	return nil
}

// Points pairs x and y, dropping samples where either is not finite.
func Points(x, y []float64) plotter.XYs {
	n := min(len(x), len(y))

	pts := make(plotter.XYs, 0, n)
	for i := range n {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}

		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}

	return pts
}
