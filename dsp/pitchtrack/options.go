package pitchtrack

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-cvquant/dsp/window"
)

const (
	defaultFrameSize = 2048
	defaultHopSize   = 512
	defaultMinHz     = 40.0
	defaultMaxHz     = 4000.0
	defaultGate      = 1e-3
	minFrameSize     = 64
)

type config struct {
	frameSize int
	hopSize   int
	minHz     float64
	maxHz     float64
	gate      float64
	window    window.Type
}

func defaultConfig() config {
	return config{
		frameSize: defaultFrameSize,
		hopSize:   defaultHopSize,
		minHz:     defaultMinHz,
		maxHz:     defaultMaxHz,
		gate:      defaultGate,
		window:    window.TypeHann,
	}
}

// Option configures a [Tracker].
type Option func(*config) error

// WithFrameSize sets the analysis frame length (power of two, >= 64, default 2048).
func WithFrameSize(n int) Option {
	return func(cfg *config) error {
		if n < minFrameSize || bits.OnesCount(uint(n)) != 1 {
			return fmt.Errorf("pitchtrack: frame size must be a power of two >= %d: %d", minFrameSize, n)
		}
		cfg.frameSize = n
		return nil
	}
}

// WithHopSize sets the distance between frames in samples (default 512).
func WithHopSize(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("pitchtrack: hop size must be > 0: %d", n)
		}
		cfg.hopSize = n
		return nil
	}
}

// WithRange limits detected pitches to [minHz, maxHz] (default 40 to 4000 Hz).
func WithRange(minHz, maxHz float64) Option {
	return func(cfg *config) error {
		if minHz <= 0 || maxHz <= minHz || math.IsInf(maxHz, 0) || math.IsNaN(minHz) || math.IsNaN(maxHz) {
			return fmt.Errorf("pitchtrack: invalid range [%f, %f]", minHz, maxHz)
		}
		cfg.minHz = minHz
		cfg.maxHz = maxHz
		return nil
	}
}

// WithGate sets the RMS level below which a frame is unvoiced (default 1e-3).
func WithGate(rms float64) Option {
	return func(cfg *config) error {
		if rms < 0 || math.IsNaN(rms) || math.IsInf(rms, 0) {
			return fmt.Errorf("pitchtrack: gate must be >= 0 and finite: %f", rms)
		}
		cfg.gate = rms
		return nil
	}
}

// WithWindow sets the analysis window (default Hann).
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("pitchtrack: %w: %v", window.ErrUnknownType, t)
		}
		cfg.window = t
		return nil
	}
}
