package quantize

import (
	"math"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/tuning"
)

// fakeProvider is a mutable tuning authority for tests.
type fakeProvider struct {
	table     tuning.Table
	filtered  tuning.FilterSet
	authority bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{table: c4Table(), authority: true}
}

func (f *fakeProvider) HasAuthority() bool         { return f.authority }
func (f *fakeProvider) Frequency(note int) float64 { return f.table[note] }

func (f *fakeProvider) Filtered(note int) bool {
	return !tuning.ValidNote(note) || f.filtered[note]
}

func (f *fakeProvider) filterAll() {
	for i := range f.filtered {
		f.filtered[i] = true
	}
}

// c4Table is 12-TET with note 60 exactly at the 0 V reference, so that
// note n sits at (n-60)/12 volts.
func c4Table() tuning.Table {
	var t tuning.Table
	for i := range t {
		t[i] = core.FreqC4 * math.Exp2(float64(i-60)/12)
	}
	return t
}

func noteVolts(note int) float64 {
	return float64(note-60) / 12
}

func nearlyVolts(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// sparseTable filters every note except the given ones.
func sparseTable(freqs map[int]float64) (*tuning.Table, func(int) bool) {
	var t tuning.Table
	for i := range t {
		t[i] = 1
	}
	for n, hz := range freqs {
		t[n] = hz
	}
	return &t, func(n int) bool {
		_, ok := freqs[n]
		return !ok
	}
}
