// Package testutil provides deterministic control-voltage and audio signals
// and tolerance helpers shared by tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates a linear ramp from `from` to `to` inclusive.
func Ramp(from, to float64, length int) []float64 {
	out := make([]float64, length)
	if length == 1 {
		out[0] = from
	}
	if length < 2 {
		return out
	}
	step := (to - from) / float64(length-1)
	for i := range out {
		out[i] = from + step*float64(i)
	}
	return out
}

// Steps holds each level for hold samples, like a sample-and-hold output.
func Steps(levels []float64, hold int) []float64 {
	out := make([]float64, 0, len(levels)*hold)
	for _, v := range levels {
		for range hold {
			out = append(out, v)
		}
	}
	return out
}
