package quantize

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

const (
	defaultThrottlePeriod   = 0.005
	defaultTriggerDuration  = 1e-3
	defaultTriggerVoltage   = 10.0
	defaultMaxDiscreteVolts = 5.0
)

type config struct {
	rounding         RoundingMode
	inputMode        InputMode
	throttlePeriod   float64
	triggerDuration  float64
	triggerVoltage   float64
	maxDiscreteVolts float64
	logger           *zap.Logger
}

func defaultConfig() config {
	return config{
		rounding:         RoundNearest,
		inputMode:        ModeContinuous,
		throttlePeriod:   defaultThrottlePeriod,
		triggerDuration:  defaultTriggerDuration,
		triggerVoltage:   defaultTriggerVoltage,
		maxDiscreteVolts: defaultMaxDiscreteVolts,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithRoundingMode sets the initial rounding mode (default [RoundNearest]).
func WithRoundingMode(m RoundingMode) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidRoundingMode, m)
		}
		cfg.rounding = m
		return nil
	}
}

// WithInputMode sets the initial input interpretation (default [ModeContinuous]).
func WithInputMode(m InputMode) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidInputMode, m)
		}
		cfg.inputMode = m
		return nil
	}
}

// WithThrottlePeriod sets the throttle window in seconds (default 5 ms).
// Zero disables throttling so every tick recomputes.
func WithThrottlePeriod(seconds float64) Option {
	return func(cfg *config) error {
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("quantize: throttle period must be >= 0 and finite: %f", seconds)
		}
		cfg.throttlePeriod = seconds
		return nil
	}
}

// WithTriggerDuration sets the trigger pulse length in seconds (default 1 ms).
func WithTriggerDuration(seconds float64) Option {
	return func(cfg *config) error {
		if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("quantize: trigger duration must be > 0 and finite: %f", seconds)
		}
		cfg.triggerDuration = seconds
		return nil
	}
}

// WithTriggerVoltage sets the high level of the trigger output (default 10 V).
func WithTriggerVoltage(volts float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(volts) || math.IsInf(volts, 0) {
			return fmt.Errorf("quantize: trigger voltage must be finite: %f", volts)
		}
		cfg.triggerVoltage = volts
		return nil
	}
}

// WithMaxDiscreteVoltage sets the output bound of discrete input mode
// (default 5 V). Notes beyond ±volts are replaced by the nearest usable
// pitch to the bound.
func WithMaxDiscreteVoltage(volts float64) Option {
	return func(cfg *config) error {
		if volts <= 0 || math.IsNaN(volts) || math.IsInf(volts, 0) {
			return fmt.Errorf("quantize: discrete voltage bound must be > 0 and finite: %f", volts)
		}
		cfg.maxDiscreteVolts = volts
		return nil
	}
}

// WithLogger sets the logger used for authority and mode transitions.
// Nothing is logged per sample.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}
