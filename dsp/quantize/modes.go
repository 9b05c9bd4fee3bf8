package quantize

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/tuning"
)

var (
	// ErrInvalidRoundingMode is returned for rounding modes outside Down..Up.
	ErrInvalidRoundingMode = errors.New("quantize: invalid rounding mode")
	// ErrInvalidInputMode is returned for unknown input interpretation modes.
	ErrInvalidInputMode = errors.New("quantize: invalid input mode")
)

// RoundingMode selects which neighbour wins when the input lies strictly
// between two usable pitches.
type RoundingMode int

const (
	// RoundDown picks the nearest usable pitch below the input.
	RoundDown RoundingMode = -1
	// RoundNearest picks the closer neighbour on a logarithmic scale.
	RoundNearest RoundingMode = 0
	// RoundUp picks the nearest usable pitch above the input.
	RoundUp RoundingMode = 1
)

// String returns the name of the rounding mode.
func (m RoundingMode) String() string {
	switch m {
	case RoundDown:
		return "Down"
	case RoundNearest:
		return "Nearest"
	case RoundUp:
		return "Up"
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// Valid reports whether m is a known rounding mode.
func (m RoundingMode) Valid() bool {
	return m >= RoundDown && m <= RoundUp
}

// RoundingFromParam maps a three-position control value in [-1, 1] to a
// rounding mode. Values are rounded to the nearest position and clamped.
func RoundingFromParam(v float64) RoundingMode {
	if math.IsNaN(v) {
		return RoundNearest
	}
	return RoundingMode(math.Round(core.Clamp(v, -1, 1)))
}

// InputMode selects how input voltages are interpreted.
type InputMode int

const (
	// ModeContinuous treats the input as 1 V/octave pitch, 0 V = C4.
	ModeContinuous InputMode = iota
	// ModeDiscrete treats the input as a note index: 0 V = note 60 and
	// each 1/12 V is one note.
	ModeDiscrete

	inputModeCount
)

var inputModeNames = [inputModeCount]string{"Continuous", "Discrete"}

// String returns the name of the input mode.
func (m InputMode) String() string {
	if m.Valid() {
		return inputModeNames[m]
	}
	return fmt.Sprintf("InputMode(%d)", int(m))
}

// Valid reports whether m is a known input mode.
func (m InputMode) Valid() bool {
	return m >= 0 && m < inputModeCount
}

// ParseInputMode parses "continuous" or "discrete".
func ParseInputMode(s string) (InputMode, error) {
	switch s {
	case "continuous", "Continuous":
		return ModeContinuous, nil
	case "discrete", "Discrete":
		return ModeDiscrete, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInputMode, s)
}

// NoteForVoltage maps a discrete-mode input voltage to a note index.
// The fractional note is truncated, not rounded, and clamped to [0, 127].
func NoteForVoltage(volts float64) int {
	return int(core.Clamp(60+volts*12, 0, tuning.NumNotes-1))
}
