package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bandpass/internal/testutil"
)

func TestPolyfitExactCubic(t *testing.T) {
	want := []float64{1e-6, -3e-4, 0.02, 1.5}
	x := Range(288)

	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = Polyval(want, xi)
	}

	got, err := Polyfit(x, y, 3)
	require.NoError(t, err)

	for i := range want {
		assert.InEpsilon(t, want[i], got[i], 1e-6, "coefficient %d", i)
	}
}

func TestPolyfitHighDegreeStaysStable(t *testing.T) {
	x := Range(288)
	y := make([]float64, len(x))

	for i, xi := range x {
		y[i] = 1 + 0.1*math.Sin(xi/80)
	}

	coeffs, err := Polyfit(x, y, 6)
	require.NoError(t, err)

	fitted := make([]float64, len(x))
	PolyvalInto(fitted, coeffs, x)
	testutil.RequireSliceNearlyEqual(t, fitted, y, 1e-3)
}

func TestPolyfitConstant(t *testing.T) {
	got, err := Polyfit([]float64{0, 1, 2, 3}, []float64{1, 3, 1, 3}, 0)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, got, []float64{2}, 1e-12)
}

func TestPolyfitErrors(t *testing.T) {
	_, err := Polyfit([]float64{0, 1}, []float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Polyfit([]float64{0, 1}, []float64{1, 2}, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Polyfit([]float64{1, 1, 1}, []float64{1, 2, 3}, 1)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestPolyval(t *testing.T) {
	assert.Equal(t, 0.0, Polyval(nil, 3))
	assert.Equal(t, 7.0, Polyval([]float64{2, 1}, 3))
	assert.Equal(t, 10.0, Polyval([]float64{1, 0, 1}, 3))
}

func TestNaNStats(t *testing.T) {
	nan := math.NaN()
	v := []float64{1, nan, 3, math.Inf(1), 5}

	assert.Equal(t, 3, CountValid(v))
	assert.Equal(t, []float64{1, 3, 5}, Finite(v))
	assert.InDelta(t, math.Sqrt(8.0/3.0), NaNStd(v), 1e-12)
	assert.Equal(t, 3.0, NaNMedian(v))
	assert.True(t, math.IsNaN(NaNStd([]float64{nan})))
	assert.True(t, math.IsNaN(NaNMedian(nil)))
}

func TestLeaveOneOutStd(t *testing.T) {
	residual := []float64{1, -1, math.NaN(), 2, -2}
	got := make([]float64, len(residual))
	leaveOneOutStd(got, residual)

	for i, r := range residual {
		if math.IsNaN(r) {
			assert.True(t, math.IsNaN(got[i]))
			continue
		}

		others := make([]float64, 0, 3)
		for j, o := range residual {
			if j != i && !math.IsNaN(o) {
				others = append(others, o)
			}
		}

		assert.InDelta(t, NaNStd(others), got[i], 1e-12, "index %d", i)
	}
}
