package smooth

import (
	"fmt"

	"github.com/cwbudde/algo-bandpass/calsol"
)

// InvalidFraction returns the fraction of NaN or Inf samples across the
// (channel, polarization) block of one antenna.
func InvalidFraction(raw *calsol.Bandpass, sol, ant int) float64 {
	block := raw.Antenna(sol, ant)

	invalid := 0
	for _, v := range block {
		if !calsol.IsValid(v) {
			invalid++
		}
	}

	return float64(invalid) / float64(len(block))
}

// SelectReference returns the antenna with the smallest invalid fraction in
// solution sol, preferring the lowest index on ties.
func SelectReference(raw *calsol.Bandpass, sol int) (int, error) {
	if sol < 0 || sol >= raw.NSol {
		return -1, fmt.Errorf("%w: solution %d, have %d", ErrConfig, sol, raw.NSol)
	}

	best, bestFrac := -1, 1.0
	for ant := range raw.NAnt {
		if f := InvalidFraction(raw, sol, ant); f < bestFrac {
			best, bestFrac = ant, f
		}
	}

	if best < 0 {
		return -1, fmt.Errorf("%w: all %d antennas fully flagged", ErrNoReferenceAntenna, raw.NAnt)
	}

	return best, nil
}

// CheckReference validates an explicitly chosen reference antenna. A
// partially flagged reference is accepted.
func CheckReference(raw *calsol.Bandpass, sol, ant int) error {
	if sol < 0 || sol >= raw.NSol {
		return fmt.Errorf("%w: solution %d, have %d", ErrConfig, sol, raw.NSol)
	}

	if ant < 0 || ant >= raw.NAnt {
		return fmt.Errorf("%w: reference antenna %d, have %d", ErrConfig, ant, raw.NAnt)
	}

	if InvalidFraction(raw, sol, ant) == 1 {
		return fmt.Errorf("%w: antenna %d is fully flagged", ErrNoReferenceAntenna, ant)
	}

	return nil
}
