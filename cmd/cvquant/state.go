package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cwbudde/algo-cvquant/dsp/quantize"
	"github.com/cwbudde/algo-cvquant/tuning"
)

func (r *runner) state(c *cli.Context) error {
	mode, err := quantize.ParseInputMode(c.String(flagMode))
	if err != nil {
		return err
	}
	q, err := quantize.New(tuning.Disconnected, quantize.WithInputMode(mode))
	if err != nil {
		return err
	}

	data, err := q.MarshalState()
	if err != nil {
		return err
	}

	path := c.String(flagOut)
	if path == "" {
		_, err := fmt.Fprintln(c.App.Writer, string(data))
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
