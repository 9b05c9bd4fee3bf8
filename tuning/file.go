package tuning

import (
	"encoding/json"
	"fmt"
	"os"
)

// fileFormat is the on-disk JSON layout of a tuning table.
type fileFormat struct {
	Frequencies []float64 `json:"frequencies"`
	Filtered    []int     `json:"filtered,omitempty"`
}

// ParseJSON decodes a table file of the form
//
//	{"frequencies": [128 numbers in Hz], "filtered": [note indices]}
func ParseJSON(data []byte) (*Snapshot, error) {
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("tuning: decode table: %w", err)
	}
	if len(f.Frequencies) != NumNotes {
		return nil, fmt.Errorf("%w: want %d frequencies, got %d", ErrInvalidTable, NumNotes, len(f.Frequencies))
	}

	var table Table
	copy(table[:], f.Frequencies)

	return NewSnapshot(table, f.Filtered...)
}

// MarshalJSON encodes s in the table file format.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileFormat{
		Frequencies: s.Table[:],
		Filtered:    s.Filtered.Notes(),
	})
}

// LoadFile reads and parses a table file.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tuning: read table: %w", err)
	}
	return ParseJSON(data)
}

// WriteFile writes s to path in the table file format.
func WriteFile(path string, s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("tuning: encode table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("tuning: write table: %w", err)
	}
	return nil
}
