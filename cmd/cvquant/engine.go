package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/dsp/quantize"
	"github.com/cwbudde/algo-cvquant/internal/cvio"
	"github.com/cwbudde/algo-cvquant/tuning"
)

// staticProvider returns the table named by --table, or 12-TET.
func staticProvider(c *cli.Context) (*tuning.Static, error) {
	path := c.String(flagTable)
	if path == "" {
		return tuning.NewStatic(tuning.DefaultTable())
	}
	snap, err := tuning.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return tuning.NewStatic(snap.Table, snap.Filtered.Notes()...)
}

// newQuantizer builds a quantizer from the shared quantize flags.
func (r *runner) newQuantizer(c *cli.Context, provider tuning.Provider) (*quantize.Quantizer, error) {
	q, err := quantize.New(provider,
		quantize.WithRoundingMode(quantize.RoundingFromParam(c.Float64(flagRounding))),
		quantize.WithThrottlePeriod(c.Float64(flagThrottle)),
		quantize.WithLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}

	if path := c.String(flagState); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read state: %w", err)
		}
		if err := q.UnmarshalState(data); err != nil {
			return nil, err
		}
	}

	if c.IsSet(flagMode) {
		mode, err := quantize.ParseInputMode(c.String(flagMode))
		if err != nil {
			return nil, err
		}
		if err := q.SetInputMode(mode); err != nil {
			return nil, err
		}
	}

	r.logger.Debug("quantizer configured",
		zap.Stringer("rounding", q.RoundingMode()),
		zap.Stringer("mode", q.InputMode()),
		zap.Float64("throttle", q.ThrottlePeriod()),
	)
	return q, nil
}

// quantizeSignal runs q over in in blocks of cfg.BlockSize and returns the
// CV and trigger signals.
func quantizeSignal(q *quantize.Quantizer, in *cvio.Signal, cfg core.ProcessorConfig) (cv, trig *cvio.Signal) {
	channels := min(len(in.Channels), cfg.Channels)
	frames := in.Frames()
	cv = cvio.NewSignal(in.SampleRate, channels, frames)
	trig = cvio.NewSignal(in.SampleRate, channels, frames)

	block := &quantize.Block{In: make([][]float64, channels)}
	for start := 0; start < frames; start += cfg.BlockSize {
		end := min(start+cfg.BlockSize, frames)
		for ch := range channels {
			block.In[ch] = in.Channels[ch][start:end]
		}
		q.ProcessBlock(block, cfg.SampleRate)
		for ch := range channels {
			copy(cv.Channels[ch][start:end], block.CV[ch])
			copy(trig.Channels[ch][start:end], block.Trigger[ch])
		}
	}
	return cv, trig
}

// writeOutputs writes cv to --out and trig to --trig if set. Both writes
// are attempted and their errors combined.
func writeOutputs(c *cli.Context, cv, trig *cvio.Signal) error {
	err := cvio.Write(c.String(flagOut), cv)
	if path := c.String(flagTrig); path != "" {
		err = multierr.Append(err, cvio.Write(path, trig))
	}
	return err
}

var errNoInput = errors.New("input has no samples")
