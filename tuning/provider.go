package tuning

// Provider is the external tuning authority. All methods are called from
// the audio thread at sample rate and must not block.
type Provider interface {
	// HasAuthority reports whether a tuning authority is currently present.
	HasAuthority() bool
	// Frequency returns the current frequency in Hz of note (0..127).
	Frequency(note int) float64
	// Filtered reports whether note is unusable in the current scale.
	Filtered(note int) bool
}

// Disconnected is a Provider with no authority. It serves the default
// table and filters nothing.
var Disconnected Provider = disconnected{}

type disconnected struct{}

func (disconnected) HasAuthority() bool { return false }

func (disconnected) Frequency(note int) float64 {
	if !ValidNote(note) {
		return 0
	}
	return defaultTable[note]
}

func (disconnected) Filtered(note int) bool { return !ValidNote(note) }

// Static is an immutable Provider serving a fixed table.
type Static struct {
	table     Table
	filtered  FilterSet
	authority bool
}

// NewStatic returns a Static provider with authority present. The given
// notes are filtered.
func NewStatic(table Table, filtered ...int) (*Static, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	set, err := NewFilterSet(filtered...)
	if err != nil {
		return nil, err
	}
	return &Static{table: table, filtered: set, authority: true}, nil
}

// HasAuthority implements Provider.
func (s *Static) HasAuthority() bool { return s.authority }

// Frequency implements Provider.
func (s *Static) Frequency(note int) float64 {
	if !ValidNote(note) {
		return 0
	}
	return s.table[note]
}

// Filtered implements Provider. Out-of-range notes are always filtered.
func (s *Static) Filtered(note int) bool {
	if !ValidNote(note) {
		return true
	}
	return s.filtered[note]
}
