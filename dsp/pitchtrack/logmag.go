//go:build !fastmath

package pitchtrack

import "math"

// logMag returns the natural log of a spectral magnitude.
func logMag(x float64) float64 {
	return math.Log(x)
}
