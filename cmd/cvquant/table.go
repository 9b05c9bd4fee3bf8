package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/tuning"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// noteName returns the scientific pitch name of a MIDI note (60 = C4).
func noteName(note int) string {
	return fmt.Sprintf("%s%d", noteNames[note%12], note/12-1)
}

func (r *runner) table(c *cli.Context) error {
	provider, err := staticProvider(c)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Note\tName\tFrequency [Hz]\tVolts\tFiltered\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "----\t----\t--------------\t-----\t--------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for note := range tuning.NumNotes {
		hz := provider.Frequency(note)
		filtered := ""
		if provider.Filtered(note) {
			filtered = "yes"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%.4f\t%+.4f\t%s\n",
			note,
			noteName(note),
			hz,
			core.HzToVolts(hz),
			filtered,
		); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
