package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-bandpass/calsol"
)

// DeterministicNoise generates uniform noise in [-amplitude, amplitude) with
// a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// GainModel describes the noise-free gain of one antenna: a quadratic
// amplitude ripple and a linear phase (delay) across channels.
type GainModel struct {
	Amp0, Amp1, Amp2 float64 // amplitude = Amp0 + Amp1*ch + Amp2*ch²
	Phase0, Delay    float64 // phase = Phase0 + Delay*ch, radians
}

// Gain evaluates the model at channel ch.
func (m GainModel) Gain(ch int) complex128 {
	x := float64(ch)
	amp := m.Amp0 + m.Amp1*x + m.Amp2*x*x
	return cmplx.Rect(amp, m.Phase0+m.Delay*x)
}

// AntennaModel returns a reproducible per-antenna model; antenna 0 has zero
// phase so relative phases equal absolute ones.
func AntennaModel(ant int) GainModel {
	a := float64(ant)
	m := GainModel{
		Amp0:   1 + 0.05*a,
		Amp1:   2e-4,
		Amp2:   -5e-7,
		Phase0: 0.4 * a,
		Delay:  0.002 * a,
	}
	if ant == 0 {
		m.Phase0, m.Delay = 0, 0
	}
	return m
}

// SyntheticBandpass builds a single-solution bandpass from AntennaModel with
// multiplicative complex noise of relative size noise. Every polarization
// of an antenna carries the same model.
func SyntheticBandpass(nant, nchan, npol int, noise float64, seed int64) *calsol.Bandpass {
	bp, err := calsol.New(1, nant, nchan, npol)
	if err != nil {
		panic(err)
	}
	rng := rand.New(rand.NewSource(seed))
	for ant := range nant {
		model := AntennaModel(ant)
		for ch := range nchan {
			g := model.Gain(ch)
			for pol := range npol {
				n := complex(1+noise*rng.NormFloat64(), noise*rng.NormFloat64())
				bp.Set(0, ant, ch, pol, g*n)
			}
		}
	}
	return bp
}

// WrapPhase maps phi to (-π, π].
func WrapPhase(phi float64) float64 {
	w := math.Remainder(phi, 2*math.Pi)
	if w <= -math.Pi {
		w += 2 * math.Pi
	}
	return w
}
