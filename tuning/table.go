package tuning

import (
	"errors"
	"fmt"
	"math"
)

// NumNotes is the number of entries in a frequency table.
const NumNotes = 128

const (
	// ReferenceNote is the note index tuned to ReferenceHz in the default table.
	ReferenceNote = 69
	// ReferenceHz is the frequency of ReferenceNote in the default table.
	ReferenceHz = 440.0
)

// ErrInvalidTable is returned when a table or filter set fails validation.
var ErrInvalidTable = errors.New("tuning: invalid table")

// Table maps note indices to frequencies in Hz. Entries need not be
// monotonic.
type Table [NumNotes]float64

var defaultTable = func() Table {
	var t Table
	for i := range t {
		t[i] = ReferenceHz * math.Exp2(float64(i-ReferenceNote)/12)
	}
	return t
}()

// DefaultTable returns the 12-tone equal temperament table with A4 = 440 Hz
// at note 69.
func DefaultTable() Table {
	return defaultTable
}

// ValidNote reports whether note is a table index.
func ValidNote(note int) bool {
	return note >= 0 && note < NumNotes
}

// ValidFrequency reports whether hz can be stored in a table.
func ValidFrequency(hz float64) bool {
	return hz > 0 && !math.IsInf(hz, 0) && !math.IsNaN(hz)
}

// Validate checks that every entry is a finite, positive frequency.
func (t *Table) Validate() error {
	for i, hz := range t {
		if !ValidFrequency(hz) {
			return fmt.Errorf("%w: note %d has frequency %v", ErrInvalidTable, i, hz)
		}
	}
	return nil
}

// FilterSet marks notes that are not usable in the current scale.
type FilterSet [NumNotes]bool

// NewFilterSet builds a FilterSet from note indices.
func NewFilterSet(notes ...int) (FilterSet, error) {
	var f FilterSet
	for _, n := range notes {
		if !ValidNote(n) {
			return f, fmt.Errorf("%w: filtered note %d out of range", ErrInvalidTable, n)
		}
		f[n] = true
	}
	return f, nil
}

// Notes returns the filtered note indices in ascending order.
func (f *FilterSet) Notes() []int {
	var notes []int
	for i, filtered := range f {
		if filtered {
			notes = append(notes, i)
		}
	}
	return notes
}

// Usable returns the number of notes not filtered.
func (f *FilterSet) Usable() int {
	n := 0
	for _, filtered := range f {
		if !filtered {
			n++
		}
	}
	return n
}
