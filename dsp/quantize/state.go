package quantize

import (
	"encoding/json"
	"fmt"
)

// persistedState is the session data saved by the host. The key name
// matches existing patches.
type persistedState struct {
	QuantizeMode *int `json:"quantize_mode,omitempty"`
}

// MarshalState encodes the persisted configuration (the input mode).
func (q *Quantizer) MarshalState() ([]byte, error) {
	mode := int(q.InputMode())
	return json.Marshal(persistedState{QuantizeMode: &mode})
}

// UnmarshalState restores the persisted configuration. A missing input
// mode selects [ModeContinuous]. On error the current mode is kept.
func (q *Quantizer) UnmarshalState(data []byte) error {
	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("quantize: decode state: %w", err)
	}

	mode := ModeContinuous
	if st.QuantizeMode != nil {
		mode = InputMode(*st.QuantizeMode)
	}
	return q.SetInputMode(mode)
}
