package calsol

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ChannelMask is a sorted set of channel indices flagged for every antenna
// and polarization.
type ChannelMask []int

// ParseChannelMask parses a range list such as "10-20,30,45-50". Ranges are
// inclusive. An empty string yields an empty mask.
func ParseChannelMask(spec string) (ChannelMask, error) {
	var (
		mask ChannelMask
		mErr *multierror.Error
	)

	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		lo, hi, err := parseChannelRange(token)
		if err != nil {
			mErr = multierror.Append(mErr, err)
			continue
		}

		for ch := lo; ch <= hi; ch++ {
			mask = append(mask, ch)
		}
	}

	if err := mErr.ErrorOrNil(); err != nil {
		return nil, err
	}

	slices.Sort(mask)

	return slices.Compact(mask), nil
}

// MaxChannel is the highest channel index a mask may name.
const MaxChannel = 1<<20 - 1

func parseChannelRange(token string) (int, int, error) {
	first, last, isRange := strings.Cut(token, "-")

	lo, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil || lo < 0 || lo > MaxChannel {
		return 0, 0, fmt.Errorf("%w: %q", ErrChannelSpec, token)
	}

	if !isRange {
		return lo, lo, nil
	}

	hi, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil || hi < lo || hi > MaxChannel {
		return 0, 0, fmt.Errorf("%w: %q", ErrChannelSpec, token)
	}

	return lo, hi, nil
}

// String formats the mask back into compact range syntax.
func (m ChannelMask) String() string {
	var sb strings.Builder

	for i := 0; i < len(m); {
		j := i
		for j+1 < len(m) && m[j+1] == m[j]+1 {
			j++
		}

		if sb.Len() > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(strconv.Itoa(m[i]))

		if j > i {
			sb.WriteByte('-')
			sb.WriteString(strconv.Itoa(m[j]))
		}

		i = j + 1
	}

	return sb.String()
}

// ApplyChannelFlags returns a copy of raw with every channel in mask set to
// NaN+j·NaN for all solutions, antennas and polarizations.
func ApplyChannelFlags(raw *Bandpass, mask ChannelMask) (*Bandpass, error) {
	for _, ch := range mask {
		if ch < 0 || ch >= raw.NChan {
			return nil, fmt.Errorf("%w: channel %d, have %d channels", ErrChannelRange, ch, raw.NChan)
		}
	}

	out := raw.Clone()
	if len(mask) == 0 {
		return out, nil
	}

	nan := NaN()
	for sol := range out.NSol {
		for ant := range out.NAnt {
			for _, ch := range mask {
				for pol := range out.NPol {
					out.Set(sol, ant, ch, pol, nan)
				}
			}
		}
	}

	return out, nil
}
