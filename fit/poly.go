package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by the fitting functions.
var (
	ErrInvalidArgument = errors.New("fit: invalid argument")
	ErrSingular        = errors.New("fit: singular least-squares system")
)

// Polyfit returns the least-squares polynomial of the given degree through
// (x, y). Coefficients are ordered from x^degree down to the constant term.
// The samples must be finite and at least degree+1 long.
func Polyfit(x, y []float64, degree int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrInvalidArgument, len(x), len(y))
	}

	if degree < 0 {
		return nil, fmt.Errorf("%w: degree %d", ErrInvalidArgument, degree)
	}

	n, cols := len(x), degree+1
	if n < cols {
		return nil, fmt.Errorf("%w: %d samples for degree %d", ErrInvalidArgument, n, degree)
	}

	// Vandermonde matrix with unit-norm columns; unscaled powers of channel
	// indices span too many decades for a stable solve.
	vander := make([]float64, n*cols)
	for i, xi := range x {
		p := 1.0
		for j := cols - 1; j >= 0; j-- {
			vander[i*cols+j] = p
			p *= xi
		}
	}

	norms := make([]float64, cols)
	for j := range cols {
		var ss float64
		for i := range n {
			v := vander[i*cols+j]
			ss += v * v
		}

		norms[j] = math.Sqrt(ss)
		if norms[j] == 0 {
			norms[j] = 1
		}

		for i := range n {
			vander[i*cols+j] /= norms[j]
		}
	}

	rhs := make([]float64, n)
	copy(rhs, y)

	var qr mat.QR
	qr.Factorize(mat.NewDense(n, cols, vander))

	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, mat.NewVecDense(n, rhs)); err != nil {
		return nil, fmt.Errorf("%w: degree %d over %d samples: %w", ErrSingular, degree, n, err)
	}

	coeffs := make([]float64, cols)
	for j := range cols {
		coeffs[j] = sol.AtVec(j) / norms[j]
	}

	return coeffs, nil
}

// Polyval evaluates the polynomial with the given coefficients at x using
// Horner's rule.
func Polyval(coeffs []float64, x float64) float64 {
	var acc float64
	for _, c := range coeffs {
		acc = acc*x + c
	}

	return acc
}

// PolyvalInto evaluates coeffs at every x and stores the results in dst.
// dst and x must have the same length.
func PolyvalInto(dst, coeffs, x []float64) {
	if len(dst) != len(x) {
		panic("fit: PolyvalInto length mismatch")
	}

	for i, xi := range x {
		dst[i] = Polyval(coeffs, xi)
	}
}
