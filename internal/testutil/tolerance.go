package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance). NaN matches only NaN.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.IsNaN(want[i]) || math.IsNaN(got[i]) {
			if math.IsNaN(want[i]) != math.IsNaN(got[i]) {
				t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
			}
			continue
		}
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireComplexNearlyEqual is the complex counterpart of
// RequireSliceNearlyEqual; eps bounds |got-want|.
func RequireComplexNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		gn, wn := isComplexNaN(got[i]), isComplexNaN(want[i])
		if gn || wn {
			if gn != wn {
				t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
			}
			continue
		}
		if d := abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (|diff| %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireAllNaN fails t unless every element is NaN.
func RequireAllNaN(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if !math.IsNaN(v) {
			t.Fatalf("index %d: got %v, want NaN", i, v)
		}
	}
}

// RequireAllComplexNaN fails t unless every element has a NaN part.
func RequireAllComplexNaN(t *testing.T, data []complex128) {
	t.Helper()
	for i, v := range data {
		if !isComplexNaN(v) {
			t.Fatalf("index %d: got %v, want NaN", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices,
// skipping positions where either value is NaN.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

func isComplexNaN(v complex128) bool {
	return math.IsNaN(real(v)) || math.IsNaN(imag(v))
}

func abs(v complex128) float64 {
	return math.Hypot(real(v), imag(v))
}
