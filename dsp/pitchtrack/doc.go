// Package pitchtrack estimates the pitch of an audio signal frame by frame
// and converts it to a 1 V/octave control voltage, so recorded melodies can
// be fed into the quantizer.
//
// The tracker follows the strongest spectral peak within a frequency range
// (analysis window, Hann by default, then FFT magnitude and parabolic
// interpolation on the log magnitude). It is intended for monophonic, near-sinusoidal sources such as
// whistling, sine leads or a filtered oscillator; for harmonically rich
// material it may lock onto an overtone.
package pitchtrack
