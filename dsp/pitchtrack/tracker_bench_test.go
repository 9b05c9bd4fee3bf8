package pitchtrack

import (
	"testing"

	"github.com/cwbudde/algo-cvquant/internal/testutil"
)

func BenchmarkEstimateFrame(b *testing.B) {
	tr, err := New(sampleRate)
	if err != nil {
		b.Fatal(err)
	}
	frame := testutil.DeterministicSine(440, sampleRate, 0.5, tr.FrameSize())

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := tr.EstimateFrame(frame); err != nil {
			b.Fatal(err)
		}
	}
}
