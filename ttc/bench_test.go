package ttc_test

import (
	"testing"

	"github.com/katalvlaran/revmatch/synth"
	"github.com/katalvlaran/revmatch/ttc"
)

// BenchmarkReallocate_300 runs one trading round over 300 reviewers with a
// dense preference table (90k rows).
func BenchmarkReallocate_300(b *testing.B) {
	holdings, prefs, err := synth.Trading(300, synth.WithSeed(1), synth.WithAuthorshipRate(0.05))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ttc.Reallocate(holdings, prefs, ttc.WithBidThreshold(9)); err != nil {
			b.Fatal(err)
		}
	}
}
