package pitchtrack

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/dsp/window"
	"github.com/cwbudde/algo-cvquant/internal/testutil"
)

const sampleRate = 48000.0

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		opts []Option
	}{
		{"zero rate", 0, nil},
		{"nan rate", math.NaN(), nil},
		{"frame not pow2", sampleRate, []Option{WithFrameSize(1000)}},
		{"frame too small", sampleRate, []Option{WithFrameSize(32)}},
		{"zero hop", sampleRate, []Option{WithHopSize(0)}},
		{"hop exceeds frame", sampleRate, []Option{WithFrameSize(256), WithHopSize(512)}},
		{"inverted range", sampleRate, []Option{WithRange(1000, 100)}},
		{"zero min", sampleRate, []Option{WithRange(0, 100)}},
		{"negative gate", sampleRate, []Option{WithGate(-1)}},
		{"unknown window", sampleRate, []Option{WithWindow(window.Type(99))}},
		{"range below one bin", sampleRate, []Option{WithFrameSize(64), WithRange(1, 2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.rate, tc.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	tr, err := New(sampleRate, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tr.FrameSize() != defaultFrameSize || tr.HopSize() != defaultHopSize {
		t.Fatalf("frame/hop = %d/%d, want %d/%d", tr.FrameSize(), tr.HopSize(), defaultFrameSize, defaultHopSize)
	}
	if tr.Window() != window.TypeHann {
		t.Fatalf("Window() = %v, want hann", tr.Window())
	}
	if tr.SampleRate() != sampleRate {
		t.Fatalf("SampleRate() = %v, want %v", tr.SampleRate(), sampleRate)
	}
}

func TestEstimateFrameSine(t *testing.T) {
	tr, err := New(sampleRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, hz := range []float64{110, 261.6256, 440, 987.77, 2000} {
		frame := testutil.DeterministicSine(hz, sampleRate, 0.5, tr.FrameSize())
		est, err := tr.EstimateFrame(frame)
		if err != nil {
			t.Fatalf("EstimateFrame(%v) error = %v", hz, err)
		}
		if !est.Voiced {
			t.Fatalf("EstimateFrame(%v) unvoiced", hz)
		}
		testutil.RequireCentsNear(t, est.Hz, hz, 10)
	}
}

func TestEstimateFrameWindows(t *testing.T) {
	tests := []struct {
		typ   window.Type
		cents float64
	}{
		{window.TypeRectangular, 20},
		{window.TypeHann, 5},
		{window.TypeHamming, 5},
		{window.TypeBlackman, 5},
		{window.TypeBlackmanHarris4Term, 5},
	}

	for _, tc := range tests {
		t.Run(tc.typ.String(), func(t *testing.T) {
			tr, err := New(sampleRate, WithWindow(tc.typ))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if tr.Window() != tc.typ {
				t.Fatalf("Window() = %v, want %v", tr.Window(), tc.typ)
			}
			est, err := tr.EstimateFrame(testutil.DeterministicSine(440, sampleRate, 0.5, tr.FrameSize()))
			if err != nil {
				t.Fatalf("EstimateFrame() error = %v", err)
			}
			testutil.RequireCentsNear(t, est.Hz, 440, tc.cents)
		})
	}
}

func TestEstimateFrameSilenceIsUnvoiced(t *testing.T) {
	tr, err := New(sampleRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	est, err := tr.EstimateFrame(make([]float64, tr.FrameSize()))
	if err != nil {
		t.Fatalf("EstimateFrame() error = %v", err)
	}
	if est.Voiced || est.Hz != 0 || est.Volts() != 0 {
		t.Fatalf("silence estimate = %+v, want unvoiced", est)
	}

	quiet := testutil.DeterministicSine(440, sampleRate, 1e-4, tr.FrameSize())
	if est, _ := tr.EstimateFrame(quiet); est.Voiced {
		t.Fatalf("sub-gate estimate = %+v, want unvoiced", est)
	}
}

func TestEstimateFrameShort(t *testing.T) {
	tr, err := New(sampleRate, WithFrameSize(256), WithHopSize(128))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := tr.EstimateFrame(make([]float64, 255)); !errors.Is(err, ErrShortFrame) {
		t.Fatalf("EstimateFrame(short) error = %v, want ErrShortFrame", err)
	}
}

func TestEstimateFrameRespectsRange(t *testing.T) {
	tr, err := New(sampleRate, WithRange(300, 4000))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	low := testutil.DeterministicSine(100, sampleRate, 0.8, tr.FrameSize())
	high := testutil.DeterministicSine(660, sampleRate, 0.2, tr.FrameSize())
	mix := make([]float64, tr.FrameSize())
	for i := range mix {
		mix[i] = low[i] + high[i]
	}

	est, err := tr.EstimateFrame(mix)
	if err != nil {
		t.Fatalf("EstimateFrame() error = %v", err)
	}
	testutil.RequireCentsNear(t, est.Hz, 660, 5)
}

func TestTrackFrameCount(t *testing.T) {
	tr, err := New(sampleRate, WithFrameSize(1024), WithHopSize(256))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1023, 0},
		{1024, 1},
		{1279, 1},
		{1280, 2},
		{4096, 13},
	}
	for _, tc := range tests {
		got, err := tr.Track(make([]float64, tc.n))
		if err != nil {
			t.Fatalf("Track(%d) error = %v", tc.n, err)
		}
		if len(got) != tc.want {
			t.Fatalf("len(Track(%d)) = %d, want %d", tc.n, len(got), tc.want)
		}
	}
}

func TestTrackFollowsMelody(t *testing.T) {
	tr, err := New(sampleRate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	notes := []float64{220, 330, 440}
	segment := 8192
	var samples []float64
	for _, hz := range notes {
		samples = append(samples, testutil.DeterministicSine(hz, sampleRate, 0.5, segment)...)
	}

	est, err := tr.Track(samples)
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}

	for i, hz := range notes {
		// frame fully inside segment i
		start := i*segment + 1024
		f := start / tr.HopSize()
		if !est[f].Voiced {
			t.Fatalf("frame %d unvoiced", f)
		}
		testutil.RequireCentsNear(t, est[f].Hz, hz, 5)
	}
}

func TestEstimateVolts(t *testing.T) {
	e := Estimate{Hz: 2 * core.FreqC4, Voiced: true}
	if got := e.Volts(); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Volts() = %v, want 1", got)
	}
	if got := (Estimate{Hz: 440}).Volts(); got != 0 {
		t.Fatalf("unvoiced Volts() = %v, want 0", got)
	}
}

func TestToCV(t *testing.T) {
	est := []Estimate{
		{},
		{Hz: core.FreqC4, Voiced: true},
		{},
		{Hz: 2 * core.FreqC4, Voiced: true},
	}

	got := ToCV(est, 2, 10)
	want := []float64{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	if got := ToCV(nil, 2, 3); len(got) != 3 || got[0] != 0 {
		t.Fatalf("ToCV(nil) = %v, want zeros", got)
	}
	if got := ToCV(est, 0, 3); len(got) != 3 {
		t.Fatalf("ToCV(hop=0) len = %d, want 3", len(got))
	}
}

func TestTrackNoiseStaysFinite(t *testing.T) {
	tr, err := New(sampleRate, WithFrameSize(512), WithHopSize(256))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	est, err := tr.Track(testutil.DeterministicNoise(7, 0.5, 4096))
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	cv := ToCV(est, tr.HopSize(), 4096)
	testutil.RequireFinite(t, cv)
}
