package smooth

import (
	"context"
	"fmt"
	"testing"

	"github.com/cwbudde/algo-bandpass/internal/testutil"
)

func BenchmarkEngineRun(b *testing.B) {
	raw := testutil.SyntheticBandpass(128, 768, 4, 0.02, 1)

	for _, workers := range []int{1, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			e, err := NewEngine(WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()

			for range b.N {
				if _, err := e.Run(context.Background(), raw, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
