// Command cvquant quantizes recorded 1 V/octave control voltages to a
// tuning table, offline.
//
// Usage:
//
//	cvquant [--debug] <command> [flags]
//
// Voltages are carried in PCM WAV files, one polyphonic channel per WAV
// channel, with full scale at ±10 V. Tuning tables are JSON files of the
// form {"frequencies": [128 values in Hz], "filtered": [note numbers]}.
// Without --table the 12-TET table (A4 = 440 Hz) is used.
//
// Examples:
//
//	cvquant render --in melody.wav --out quantized.wav --trig gates.wav
//	cvquant render --in melody.wav --out q.wav --table just.json --rounding 1
//	cvquant render --in melody.wav --out q.wav --table live.json --watch
//	cvquant track --in whistle.wav --out cv.wav --table just.json
//	cvquant table --table just.json
//	cvquant state --mode discrete --out patch.json
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
