//nolint:funcorder
package quantize

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/tuning"
)

// MaxChannels is the number of polyphonic channels a Quantizer handles.
const MaxChannels = core.MaxChannels

// channelState is the per-voice memory of the quantizer.
type channelState struct {
	lastIn  float64
	lastOut float64
	trigger float64
	pulse   PulseGenerator
}

// Quantizer is a polyphonic pitch quantizer driven one sample tick at a time.
type Quantizer struct {
	provider tuning.Provider
	filtered func(note int) bool
	cache    *tuning.Cache
	throttle Throttle
	channels [MaxChannels]channelState

	rounding  atomic.Int32
	inputMode atomic.Int32

	triggerDuration  float64
	triggerVoltage   float64
	maxDiscreteVolts float64
	logger           *zap.Logger

	// previous-tick state
	authority    bool
	lastRounding RoundingMode
	bypassed     bool
	unresolvable bool
}

// New creates a Quantizer reading its tuning from provider.
func New(provider tuning.Provider, opts ...Option) (*Quantizer, error) {
	if provider == nil {
		return nil, errors.New("quantize: nil tuning provider")
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

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	q := &Quantizer{
		provider:         provider,
		filtered:         provider.Filtered,
		cache:            tuning.NewCache(),
		throttle:         NewThrottle(cfg.throttlePeriod),
		triggerDuration:  cfg.triggerDuration,
		triggerVoltage:   cfg.triggerVoltage,
		maxDiscreteVolts: cfg.maxDiscreteVolts,
		logger:           cfg.logger,
		lastRounding:     cfg.rounding,
	}
	q.rounding.Store(int32(cfg.rounding))
	q.inputMode.Store(int32(cfg.inputMode))

	return q, nil
}

// Process runs one sample tick. in holds the input voltage of each
// polyphonic channel; channels beyond MaxChannels are ignored. cv and trig
// receive the output voltage and trigger voltage of each processed channel
// and must be at least as long as the processed channel count, which is
// returned. Process panics if they are shorter.
func (q *Quantizer) Process(in, cv, trig []float64, sampleTime float64) int {
	n := min(len(in), MaxChannels)
	checkOutputs(cv, trig, n)

	lastAuthority := q.authority
	q.authority = q.provider.HasAuthority()
	if q.authority != lastAuthority {
		q.logAuthority()
	}

	lastRounding := q.lastRounding
	rounding := q.RoundingMode()
	q.lastRounding = rounding

	throttle := false
	if !q.throttle.Advance(sampleTime) {
		throttle = q.authority && lastAuthority && rounding == lastRounding && !q.bypassed
	}
	q.bypassed = false

	switch {
	case throttle:
		for c := range n {
			ch := &q.channels[c]
			cv[c] = ch.lastOut
			trig[c] = q.advancePulse(ch, sampleTime)
		}
	case q.authority:
		changed := q.authority != lastAuthority || rounding != lastRounding
		if q.cache.Refresh(q.provider) {
			changed = true
		}

		mode := q.InputMode()
		for c := range n {
			out, edge := q.step(c, in[c], changed, rounding, mode)
			cv[c] = out

			ch := &q.channels[c]
			if edge {
				ch.pulse.Trigger(q.triggerDuration)
			}
			trig[c] = q.advancePulse(ch, sampleTime)
		}
	default:
		for c := range n {
			vin := core.Sanitize(in[c])
			ch := &q.channels[c]
			ch.lastIn, ch.lastOut = vin, vin
			ch.trigger = 0
			ch.pulse.Reset()
			cv[c] = vin
			trig[c] = 0
		}
	}

	return n
}

// advancePulse runs the trigger pulse of ch for one tick and returns the
// trigger voltage. Pulses advance on every tick, throttled or not, so their
// length does not depend on the throttle window.
func (q *Quantizer) advancePulse(ch *channelState, sampleTime float64) float64 {
	ch.trigger = 0
	if ch.pulse.Process(sampleTime) {
		ch.trigger = q.triggerVoltage
	}
	return ch.trigger
}

// step updates one channel and returns its output voltage and whether the
// output changed this tick.
func (q *Quantizer) step(c int, vin float64, tableChanged bool, rounding RoundingMode, mode InputMode) (float64, bool) {
	ch := &q.channels[c]
	vin = core.Sanitize(vin)

	out := ch.lastOut
	if tableChanged || vin != ch.lastIn {
		out = q.quantize(vin, ch.lastOut, rounding, mode)
	}
	ch.lastIn = vin

	edge := out != ch.lastOut
	ch.lastOut = out
	return out, edge
}

// quantize maps vin to an output voltage. prev is returned whenever no
// usable pitch can be assigned.
func (q *Quantizer) quantize(vin, prev float64, rounding RoundingMode, mode InputMode) float64 {
	if mode != ModeDiscrete {
		return q.resolveVolts(vin, prev, rounding)
	}

	note := NoteForVoltage(vin)
	if q.filtered(note) {
		return prev
	}

	out := core.HzToVolts(q.cache.Frequency(note))
	switch {
	case out < -q.maxDiscreteVolts:
		out = q.resolveVolts(-q.maxDiscreteVolts, prev, rounding)
	case out > q.maxDiscreteVolts:
		out = q.resolveVolts(q.maxDiscreteVolts, prev, rounding)
	}
	return out
}

func (q *Quantizer) resolveVolts(volts, prev float64, rounding RoundingMode) float64 {
	hz, ok := Resolve(core.VoltsToHz(volts), q.cache.Table(), q.filtered, rounding)
	if !ok {
		if !q.unresolvable {
			q.unresolvable = true
			q.logger.Debug("no usable note in tuning, holding output")
		}
		return prev
	}
	q.unresolvable = false
	return core.HzToVolts(hz)
}

// ProcessBypass runs one tick while the host has disabled the quantizer.
// The authority is still polled, cv receives the raw input and trig is
// zeroed. The next Process call recomputes every channel. Output buffers
// follow the same rules as for Process.
func (q *Quantizer) ProcessBypass(in, cv, trig []float64) int {
	n := min(len(in), MaxChannels)
	checkOutputs(cv, trig, n)

	lastAuthority := q.authority
	q.authority = q.provider.HasAuthority()
	if q.authority != lastAuthority {
		q.logAuthority()
	}
	q.bypassed = true

	copy(cv[:n], in[:n])
	for c := range trig[:n] {
		trig[c] = 0
	}
	return n
}

func checkOutputs(cv, trig []float64, n int) {
	if len(cv) < n || len(trig) < n {
		panic(fmt.Sprintf("quantize: output buffers too short: cv=%d trig=%d, want %d", len(cv), len(trig), n))
	}
}

func (q *Quantizer) logAuthority() {
	if q.authority {
		q.logger.Info("tuning authority connected")
	} else {
		q.logger.Info("tuning authority lost, passing input through")
	}
}

// Reset clears all channel state, restores the default table and restarts
// the throttle window. Rounding and input modes are kept.
func (q *Quantizer) Reset() {
	q.channels = [MaxChannels]channelState{}
	q.cache.Reset()
	q.throttle.Reset()
	q.authority = false
	q.bypassed = false
	q.unresolvable = false
	q.lastRounding = q.RoundingMode()
}

// Getters.

// RoundingMode returns the current rounding mode.
func (q *Quantizer) RoundingMode() RoundingMode { return RoundingMode(q.rounding.Load()) }

// InputMode returns the current input interpretation mode.
func (q *Quantizer) InputMode() InputMode { return InputMode(q.inputMode.Load()) }

// Connected reports whether a tuning authority was present on the last tick.
func (q *Quantizer) Connected() bool { return q.authority }

// IndicatorBrightness returns the brightness of a connection indicator:
// 1 when connected, 0.1 otherwise.
func (q *Quantizer) IndicatorBrightness() float64 {
	if q.authority {
		return 1
	}
	return 0.1
}

// Output returns the last output voltage of channel c. It panics if c is
// outside [0, MaxChannels).
func (q *Quantizer) Output(c int) float64 { return q.channels[c].lastOut }

// Table returns a copy of the cached frequency table.
func (q *Quantizer) Table() tuning.Table { return *q.cache.Table() }

// ThrottlePeriod returns the throttle window in seconds.
func (q *Quantizer) ThrottlePeriod() float64 { return q.throttle.Period() }

// Setters. These may be called from any goroutine.

// SetRoundingMode changes the rounding mode.
func (q *Quantizer) SetRoundingMode(m RoundingMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRoundingMode, m)
	}
	if old := RoundingMode(q.rounding.Swap(int32(m))); old != m {
		q.logger.Debug("rounding mode changed", zap.Stringer("from", old), zap.Stringer("to", m))
	}
	return nil
}

// SetRoundingParam sets the rounding mode from a control value in [-1, 1].
func (q *Quantizer) SetRoundingParam(v float64) {
	_ = q.SetRoundingMode(RoundingFromParam(v))
}

// SetInputMode changes the input interpretation mode. The change takes
// effect for channels whose input or table changes afterwards.
func (q *Quantizer) SetInputMode(m InputMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidInputMode, m)
	}
	if old := InputMode(q.inputMode.Swap(int32(m))); old != m {
		q.logger.Debug("input mode changed", zap.Stringer("from", old), zap.Stringer("to", m))
	}
	return nil
}
