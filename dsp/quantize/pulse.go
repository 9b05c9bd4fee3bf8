package quantize

// PulseGenerator produces a gate that stays high for a fixed time after
// each trigger.
type PulseGenerator struct {
	remaining float64
}

// Trigger starts a pulse of the given duration in seconds. A running pulse
// is only extended, never shortened.
func (p *PulseGenerator) Trigger(duration float64) {
	if duration > p.remaining {
		p.remaining = duration
	}
}

// Process advances the pulse by dt seconds and reports whether it was high
// during this step.
func (p *PulseGenerator) Process(dt float64) bool {
	if p.remaining > 0 {
		p.remaining -= dt
		return true
	}
	return false
}

// Reset ends any running pulse.
func (p *PulseGenerator) Reset() {
	p.remaining = 0
}
