package calsol

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Bandpass is a dense (sol, ant, chan, pol) array of complex gains stored in
// row-major order.
type Bandpass struct {
	NSol  int
	NAnt  int
	NChan int
	NPol  int
	Data  []complex128
}

// New allocates a zero-valued bandpass of the given shape.
func New(nsol, nant, nchan, npol int) (*Bandpass, error) {
	if nsol <= 0 || nant <= 0 || nchan <= 0 || npol <= 0 {
		return nil, fmt.Errorf("%w: shape (%d, %d, %d, %d)", ErrShape, nsol, nant, nchan, npol)
	}

	return &Bandpass{
		NSol:  nsol,
		NAnt:  nant,
		NChan: nchan,
		NPol:  npol,
		Data:  make([]complex128, nsol*nant*nchan*npol),
	}, nil
}

// maxHeaderValues bounds the number of samples a file header may declare.
const maxHeaderValues = 1 << 30

// checkHeaderShape rejects a shape read from a file header that is not
// positive or declares more than maxHeaderValues samples.
func checkHeaderShape(dims ...int) error {
	total := 1
	for _, d := range dims {
		if d <= 0 {
			return fmt.Errorf("%w: header shape %v", ErrCorrupt, dims)
		}

		if d > maxHeaderValues/total {
			return fmt.Errorf("%w: header shape %v too large", ErrCorrupt, dims)
		}

		total *= d
	}

	return nil
}

// NewNaN allocates a bandpass of the given shape filled with NaN+j·NaN.
func NewNaN(nsol, nant, nchan, npol int) (*Bandpass, error) {
	bp, err := New(nsol, nant, nchan, npol)
	if err != nil {
		return nil, err
	}

	nan := NaN()
	for i := range bp.Data {
		bp.Data[i] = nan
	}

	return bp, nil
}

// NaN returns the complex value used to mark a flagged sample.
func NaN() complex128 {
	return complex(math.NaN(), math.NaN())
}

// IsValid reports whether v is finite in both parts.
func IsValid(v complex128) bool {
	return !cmplx.IsNaN(v) && !cmplx.IsInf(v)
}

// Shape returns (nsol, nant, nchan, npol).
func (b *Bandpass) Shape() [4]int {
	return [4]int{b.NSol, b.NAnt, b.NChan, b.NPol}
}

// Index returns the flat offset of (sol, ant, ch, pol).
func (b *Bandpass) Index(sol, ant, ch, pol int) int {
	return ((sol*b.NAnt+ant)*b.NChan+ch)*b.NPol + pol
}

// At returns the sample at (sol, ant, ch, pol).
func (b *Bandpass) At(sol, ant, ch, pol int) complex128 {
	return b.Data[b.Index(sol, ant, ch, pol)]
}

// Set stores v at (sol, ant, ch, pol).
func (b *Bandpass) Set(sol, ant, ch, pol int, v complex128) {
	b.Data[b.Index(sol, ant, ch, pol)] = v
}

// Curve returns a copy of the gain curve [sol, ant, :, pol].
func (b *Bandpass) Curve(sol, ant, pol int) []complex128 {
	out := make([]complex128, b.NChan)
	base := b.Index(sol, ant, 0, pol)

	for ch := range out {
		out[ch] = b.Data[base+ch*b.NPol]
	}

	return out
}

// SetCurve writes curve into [sol, ant, :, pol]. curve must hold NChan values.
func (b *Bandpass) SetCurve(sol, ant, pol int, curve []complex128) {
	if len(curve) != b.NChan {
		panic(fmt.Sprintf("calsol: curve length %d, want %d", len(curve), b.NChan))
	}

	base := b.Index(sol, ant, 0, pol)
	for ch, v := range curve {
		b.Data[base+ch*b.NPol] = v
	}
}

// Antenna returns the contiguous (chan, pol) block of one antenna. The
// returned slice aliases the bandpass storage.
func (b *Bandpass) Antenna(sol, ant int) []complex128 {
	start := b.Index(sol, ant, 0, 0)
	return b.Data[start : start+b.NChan*b.NPol]
}

// Clone returns a deep copy.
func (b *Bandpass) Clone() *Bandpass {
	out := *b
	out.Data = make([]complex128, len(b.Data))
	copy(out.Data, b.Data)

	return &out
}

func (b *Bandpass) validate() error {
	if b.NSol <= 0 || b.NAnt <= 0 || b.NChan <= 0 || b.NPol <= 0 {
		return fmt.Errorf("%w: shape %v", ErrShape, b.Shape())
	}

	if want := b.NSol * b.NAnt * b.NChan * b.NPol; len(b.Data) != want {
		return fmt.Errorf("%w: %d values for shape %v (want %d)", ErrShape, len(b.Data), b.Shape(), want)
	}

	return nil
}
