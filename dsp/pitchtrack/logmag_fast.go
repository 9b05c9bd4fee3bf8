//go:build fastmath

package pitchtrack

import "github.com/meko-christian/algo-approx"

// logMag returns the natural log of a spectral magnitude using a fast
// approximation. Peak interpolation tolerates the reduced precision.
func logMag(x float64) float64 {
	return approx.FastLog(x)
}
