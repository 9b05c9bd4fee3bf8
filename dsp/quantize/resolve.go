package quantize

import (
	"math"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/tuning"
)

// matchTolerance is the distance in Hz under which a table entry counts as
// an exact match for the target.
const matchTolerance = 1e-7

// Resolve returns the frequency of the table entry nearest to target,
// skipping notes for which filtered reports true. A nil filter accepts every
// note.
//
// An entry within 1e-7 Hz of target is returned as is. Otherwise the nearest
// usable entries below and above target are found and mode decides between
// them; RoundNearest compares against their geometric midpoint. If only one
// side exists it is returned regardless of mode.
//
// ok is false when no note is usable.
func Resolve(target float64, table *tuning.Table, filtered func(note int) bool, mode RoundingMode) (hz float64, ok bool) {
	lower, upper := -1, -1

	for i, f := range table {
		if filtered != nil && filtered(i) {
			continue
		}

		d := f - target
		if math.Abs(d) < matchTolerance {
			return f, true
		}

		// Compare candidates by frequency: for targets far outside the
		// table every d rounds to the same value.
		if d < 0 {
			if lower < 0 || f > table[lower] {
				lower = i
			}
		} else if upper < 0 || f < table[upper] {
			upper = i
		}
	}

	switch {
	case lower < 0 && upper < 0:
		return 0, false
	case lower < 0:
		return table[upper], true
	case upper < 0 || lower == upper:
		return table[lower], true
	}

	fLower, fUpper := table[lower], table[upper]
	switch mode {
	case RoundDown:
		return fLower, true
	case RoundUp:
		return fUpper, true
	default:
		if target < core.LogMidpoint(fLower, fUpper) {
			return fLower, true
		}
		return fUpper, true
	}
}
