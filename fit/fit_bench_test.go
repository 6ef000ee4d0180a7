package fit

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-bandpass/internal/testutil"
)

func BenchmarkFitIterative(b *testing.B) {
	x := Range(288)
	values := testutil.DeterministicNoise(1, 0.05, len(x))

	for i := range values {
		values[i] += 1 + 1e-3*x[i]
	}

	for _, degree := range []int{0, 3, 6} {
		b.Run(fmt.Sprintf("degree=%d", degree), func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				if _, err := FitIterative(values, x, degree, 3, 3); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkUnwrap(b *testing.B) {
	seq := testutil.DeterministicNoise(2, 3, 288)

	b.ReportAllocs()

	for range b.N {
		_ = Unwrap(seq, 6.283185307179586)
	}
}
