package pitchtrack

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/dsp/window"
)

// ErrShortFrame is returned when a frame is shorter than the frame size.
var ErrShortFrame = errors.New("pitchtrack: frame shorter than frame size")

// Estimate is the pitch of one analysis frame.
type Estimate struct {
	Hz     float64
	Voiced bool
}

// Volts returns the estimate as a 1 V/octave voltage (0 V = C4), or 0 if
// the frame is unvoiced.
func (e Estimate) Volts() float64 {
	if !e.Voiced {
		return 0
	}
	return core.HzToVolts(e.Hz)
}

// Tracker estimates pitch from fixed-size audio frames.
type Tracker struct {
	sampleRate float64
	frameSize  int
	hopSize    int
	minBin     int
	maxBin     int
	gate       float64

	plan     *algofft.Plan[complex128]
	winType  window.Type
	coeffs   []float64
	frame    []float64
	spectrum []complex128
	re, im   []float64
	mag      []float64
}

// New creates a Tracker for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Tracker, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pitchtrack: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.hopSize > cfg.frameSize {
		return nil, fmt.Errorf("pitchtrack: hop size %d exceeds frame size %d", cfg.hopSize, cfg.frameSize)
	}

	plan, err := algofft.NewPlan64(cfg.frameSize)
	if err != nil {
		return nil, fmt.Errorf("pitchtrack: failed to create FFT plan: %w", err)
	}

	n := cfg.frameSize
	bins := n/2 + 1
	binHz := sampleRate / float64(n)

	t := &Tracker{
		sampleRate: sampleRate,
		frameSize:  n,
		hopSize:    cfg.hopSize,
		minBin:     max(1, int(math.Floor(cfg.minHz/binHz))),
		maxBin:     min(bins-2, int(math.Ceil(cfg.maxHz/binHz))),
		gate:       cfg.gate,
		plan:       plan,
		winType:    cfg.window,
		coeffs:     window.Generate(cfg.window, n, window.WithPeriodic()),
		frame:      make([]float64, n),
		spectrum:   make([]complex128, n),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
	}
	if t.maxBin <= t.minBin {
		return nil, fmt.Errorf("pitchtrack: range [%f, %f] Hz covers no FFT bins", cfg.minHz, cfg.maxHz)
	}

	return t, nil
}

// FrameSize returns the analysis frame length in samples.
func (t *Tracker) FrameSize() int { return t.frameSize }

// HopSize returns the distance between frames in samples.
func (t *Tracker) HopSize() int { return t.hopSize }

// Window returns the analysis window type.
func (t *Tracker) Window() window.Type { return t.winType }

// SampleRate returns the configured sample rate.
func (t *Tracker) SampleRate() float64 { return t.sampleRate }

// EstimateFrame returns the pitch of the first FrameSize samples of frame.
func (t *Tracker) EstimateFrame(frame []float64) (Estimate, error) {
	if len(frame) < t.frameSize {
		return Estimate{}, fmt.Errorf("%w: %d < %d", ErrShortFrame, len(frame), t.frameSize)
	}

	copy(t.frame, frame[:t.frameSize])

	var energy float64
	for _, v := range t.frame {
		energy += v * v
	}
	if math.Sqrt(energy/float64(t.frameSize)) < t.gate {
		return Estimate{}, nil
	}

	if err := window.ApplyCoefficientsInPlace(t.frame, t.coeffs); err != nil {
		return Estimate{}, fmt.Errorf("pitchtrack: %w", err)
	}
	for i, v := range t.frame {
		t.spectrum[i] = complex(v, 0)
	}
	if err := t.plan.Forward(t.spectrum, t.spectrum); err != nil {
		return Estimate{}, fmt.Errorf("pitchtrack: forward FFT failed: %w", err)
	}

	for k := range t.re {
		t.re[k] = real(t.spectrum[k])
		t.im[k] = imag(t.spectrum[k])
	}
	vecmath.Magnitude(t.mag, t.re, t.im)

	peak := t.minBin
	for k := t.minBin + 1; k <= t.maxBin; k++ {
		if t.mag[k] > t.mag[peak] {
			peak = k
		}
	}
	if t.mag[peak] == 0 {
		return Estimate{}, nil
	}

	bin := float64(peak) + t.interpolate(peak)
	return Estimate{Hz: bin * t.sampleRate / float64(t.frameSize), Voiced: true}, nil
}

// interpolate fits a parabola through the log magnitudes around peak and
// returns the offset of its vertex in bins.
func (t *Tracker) interpolate(peak int) float64 {
	const floor = 1e-30
	a := logMag(t.mag[peak-1] + floor)
	b := logMag(t.mag[peak] + floor)
	c := logMag(t.mag[peak+1] + floor)

	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return core.Clamp(0.5*(a-c)/den, -0.5, 0.5)
}

// Track estimates the pitch of every full frame of samples, advancing by
// the hop size. Estimate i covers samples starting at i*HopSize.
func (t *Tracker) Track(samples []float64) ([]Estimate, error) {
	if len(samples) < t.frameSize {
		return nil, nil
	}

	frames := 1 + (len(samples)-t.frameSize)/t.hopSize
	out := make([]Estimate, frames)
	for i := range out {
		start := i * t.hopSize
		est, err := t.EstimateFrame(samples[start : start+t.frameSize])
		if err != nil {
			return nil, err
		}
		out[i] = est
	}
	return out, nil
}

// ToCV expands frame estimates to a per-sample control voltage of length n.
// Each estimate covers hop samples; unvoiced frames hold the last voiced
// voltage (0 V before the first voiced frame) and the last estimate extends
// to the end.
func ToCV(estimates []Estimate, hop, n int) []float64 {
	out := make([]float64, n)
	if hop <= 0 {
		return out
	}

	held := 0.0
	for i := range out {
		f := i / hop
		if f >= len(estimates) {
			f = len(estimates) - 1
		}
		if f >= 0 && estimates[f].Voiced {
			held = estimates[f].Volts()
		}
		out[i] = held
	}
	return out
}
