package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/dsp/pitchtrack"
	"github.com/cwbudde/algo-cvquant/dsp/window"
	"github.com/cwbudde/algo-cvquant/internal/cvio"
)

func (r *runner) track(c *cli.Context) error {
	in, err := cvio.Read(c.String(flagIn))
	if err != nil {
		return err
	}
	if in.Frames() == 0 {
		return errNoInput
	}

	channel := c.Int(flagChannel)
	if channel < 0 || channel >= len(in.Channels) {
		return fmt.Errorf("channel %d out of range [0, %d)", channel, len(in.Channels))
	}

	win, err := window.ParseType(c.String(flagWindow))
	if err != nil {
		return err
	}

	tracker, err := pitchtrack.New(float64(in.SampleRate),
		pitchtrack.WithWindow(win),
		pitchtrack.WithFrameSize(c.Int(flagFrameSize)),
		pitchtrack.WithHopSize(c.Int(flagHopSize)),
		pitchtrack.WithRange(c.Float64(flagMinHz), c.Float64(flagMaxHz)),
	)
	if err != nil {
		return err
	}

	estimates, err := tracker.Track(cvio.Normalize(in.Channels[channel]))
	if err != nil {
		return err
	}

	voiced := 0
	for _, e := range estimates {
		if e.Voiced {
			voiced++
		}
	}
	r.logger.Info("tracked",
		zap.String("in", c.String(flagIn)),
		zap.Int("frames", len(estimates)),
		zap.Int("voiced", voiced),
	)

	raw := &cvio.Signal{
		SampleRate: in.SampleRate,
		Channels:   [][]float64{pitchtrack.ToCV(estimates, tracker.HopSize(), in.Frames())},
	}

	provider, err := staticProvider(c)
	if err != nil {
		return err
	}
	q, err := r.newQuantizer(c, provider)
	if err != nil {
		return err
	}

	cfg := core.ApplyProcessorOptions(core.WithSampleRate(float64(in.SampleRate)))
	cv, trig := quantizeSignal(q, raw, cfg)
	if c.Bool(flagKeepRaw) {
		cv.Channels = append(cv.Channels, raw.Channels[0])
	}
	return writeOutputs(c, cv, trig)
}
