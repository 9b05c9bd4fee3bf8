package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-cvquant/dsp/core"
	"github.com/cwbudde/algo-cvquant/internal/cvio"
	"github.com/cwbudde/algo-cvquant/tuning"
)

// watchPoll is how often --watch checks for a republished table.
const watchPoll = 100 * time.Millisecond

func (r *runner) render(c *cli.Context) (err error) {
	in, err := cvio.Read(c.String(flagIn))
	if err != nil {
		return err
	}
	if in.Frames() == 0 {
		return errNoInput
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(in.SampleRate)),
		core.WithBlockSize(c.Int(flagBlockSize)),
		core.WithChannels(min(len(in.Channels), core.MaxChannels)),
	)
	if len(in.Channels) > core.MaxChannels {
		r.logger.Warn("extra channels ignored",
			zap.Int("channels", len(in.Channels)), zap.Int("max", core.MaxChannels))
	}

	if !c.Bool(flagWatch) {
		provider, err := staticProvider(c)
		if err != nil {
			return err
		}
		return r.renderOnce(c, provider, in, cfg)
	}

	if c.String(flagTable) == "" {
		return fmt.Errorf("--%s requires --%s", flagWatch, flagTable)
	}

	live := tuning.NewLive()
	w, err := tuning.NewWatcher(c.String(flagTable), live, r.logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, w.Close()) }()

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return r.watchLoop(ctx, c, live, in, cfg, done)
}

// watchLoop renders whenever the live table changes and returns when ctx
// is cancelled.
func (r *runner) watchLoop(ctx context.Context, c *cli.Context, live *tuning.Live, in *cvio.Signal, cfg core.ProcessorConfig, done <-chan error) error {
	var (
		lastSnap      *tuning.Snapshot
		lastConnected bool
		rendered      bool
	)

	ticker := time.NewTicker(watchPoll)
	defer ticker.Stop()

	for {
		snap, connected := live.Snapshot(), live.HasAuthority()
		if !rendered || snap != lastSnap || connected != lastConnected {
			if err := r.renderOnce(c, live, in, cfg); err != nil {
				return err
			}
			lastSnap, lastConnected, rendered = snap, connected, true
		}

		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case <-ticker.C:
		}
	}
}

func (r *runner) renderOnce(c *cli.Context, provider tuning.Provider, in *cvio.Signal, cfg core.ProcessorConfig) error {
	q, err := r.newQuantizer(c, provider)
	if err != nil {
		return err
	}

	cv, trig := quantizeSignal(q, in, cfg)
	if err := writeOutputs(c, cv, trig); err != nil {
		return err
	}

	r.logger.Info("rendered",
		zap.String("out", c.String(flagOut)),
		zap.Int("channels", len(cv.Channels)),
		zap.Int("frames", cv.Frames()),
		zap.Bool("connected", q.Connected()),
	)
	return nil
}
