package core

import "math"

const defaultEpsilon = 1e-12

// FreqC4 is the frequency of middle C in Hz. It is the 0 V reference of the
// 1 V/octave pitch convention.
const FreqC4 = 261.6256

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Sanitize returns 0 for NaN or infinite values and x otherwise.
func Sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	return x
}

// VoltsToHz converts a 1 V/octave control voltage to a frequency in Hz,
// with 0 V at [FreqC4].
func VoltsToHz(volts float64) float64 {
	return FreqC4 * math.Exp2(volts)
}

// HzToVolts converts a frequency in Hz to a 1 V/octave control voltage.
// Returns -Inf for zero and NaN for negative frequencies.
func HzToVolts(hz float64) float64 {
	return math.Log2(hz / FreqC4)
}

// LogMidpoint returns the frequency halfway between lo and hi on a
// logarithmic (octave) scale, i.e. their geometric mean.
func LogMidpoint(lo, hi float64) float64 {
	return lo * math.Exp2(0.5*math.Log2(hi/lo))
}
