package quantize

// Throttle is a periodic gate that marks one tick per window as a boundary.
// Between boundaries the quantizer may reuse its previous outputs.
type Throttle struct {
	period float64
	phase  float64
}

// NewThrottle returns a Throttle with the given window in seconds. A window
// of 0 makes every tick a boundary.
func NewThrottle(period float64) Throttle {
	return Throttle{period: period}
}

// Advance moves the phase by sampleTime and reports whether this tick is a
// window boundary. The phase keeps its remainder on wrap.
func (t *Throttle) Advance(sampleTime float64) bool {
	if t.period <= 0 {
		return true
	}

	t.phase += sampleTime / t.period
	if t.phase >= 1 {
		t.phase--
		return true
	}
	return false
}

// Period returns the window length in seconds.
func (t *Throttle) Period() float64 { return t.period }

// Reset restarts the window.
func (t *Throttle) Reset() { t.phase = 0 }
