package tuning

import "go.uber.org/atomic"

// Snapshot is one immutable state of a live tuning authority.
type Snapshot struct {
	Table    Table
	Filtered FilterSet
}

// NewSnapshot validates table and filtered notes and returns a Snapshot.
func NewSnapshot(table Table, filtered ...int) (*Snapshot, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	set, err := NewFilterSet(filtered...)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Table: table, Filtered: set}, nil
}

// Live is a Provider whose table is replaced concurrently by a separate
// goroutine (a live tuning authority). Publish and Disconnect may be called
// from any goroutine; the Provider methods are safe to call from the audio
// thread while they run.
type Live struct {
	snap      atomic.Pointer[Snapshot]
	connected atomic.Bool
}

// NewLive returns a Live provider with no authority.
func NewLive() *Live {
	return &Live{}
}

// Publish validates and installs a new table, and marks the authority present.
func (l *Live) Publish(table Table, filtered ...int) error {
	s, err := NewSnapshot(table, filtered...)
	if err != nil {
		return err
	}
	l.PublishSnapshot(s)
	return nil
}

// PublishSnapshot installs s and marks the authority present. s must not be
// modified afterwards.
func (l *Live) PublishSnapshot(s *Snapshot) {
	if s == nil {
		l.Disconnect()
		return
	}
	l.snap.Store(s)
	l.connected.Store(true)
}

// Disconnect marks the authority absent. The last snapshot is kept so a
// reconnecting authority does not see a default table in between.
func (l *Live) Disconnect() {
	l.connected.Store(false)
}

// Snapshot returns the most recently published snapshot, or nil.
func (l *Live) Snapshot() *Snapshot {
	return l.snap.Load()
}

// HasAuthority implements Provider.
func (l *Live) HasAuthority() bool {
	return l.connected.Load() && l.snap.Load() != nil
}

// Frequency implements Provider. Without a snapshot the default table is used.
func (l *Live) Frequency(note int) float64 {
	if !ValidNote(note) {
		return 0
	}
	if s := l.snap.Load(); s != nil {
		return s.Table[note]
	}
	return defaultTable[note]
}

// Filtered implements Provider.
func (l *Live) Filtered(note int) bool {
	if !ValidNote(note) {
		return true
	}
	if s := l.snap.Load(); s != nil {
		return s.Filtered[note]
	}
	return false
}
