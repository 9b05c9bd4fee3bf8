package main

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// Flags.
	flagDebug     = "debug"
	flagIn        = "in"
	flagOut       = "out"
	flagTrig      = "trig"
	flagTable     = "table"
	flagWatch     = "watch"
	flagRounding  = "rounding"
	flagMode      = "mode"
	flagState     = "state"
	flagThrottle  = "throttle"
	flagBlockSize = "block-size"
	flagChannel   = "channel"
	flagFrameSize = "frame-size"
	flagHopSize   = "hop-size"
	flagMinHz     = "min-hz"
	flagMaxHz     = "max-hz"
	flagKeepRaw   = "keep-raw"
	flagWindow    = "window"
)

// runner carries state shared by the command actions.
type runner struct {
	logger *zap.Logger
	errOut io.Writer
}

func newApp(out, errOut io.Writer) *cli.App {
	r := &runner{logger: zap.NewNop(), errOut: errOut}

	tableFlag := &cli.StringFlag{
		Name:  flagTable,
		Usage: "tuning table `FILE` (JSON); default is 12-TET",
	}
	quantizeFlags := []cli.Flag{
		tableFlag,
		&cli.Float64Flag{
			Name:  flagRounding,
			Usage: "rounding: -1 down, 0 nearest, 1 up (fractions are rounded)",
		},
		&cli.StringFlag{
			Name:  flagMode,
			Usage: "input mode: continuous or discrete",
		},
		&cli.StringFlag{
			Name:  flagState,
			Usage: "load the input mode from a saved state `FILE`; --mode overrides it",
		},
		&cli.Float64Flag{
			Name:  flagThrottle,
			Value: 0.005,
			Usage: "recompute period in seconds; 0 recomputes every sample",
		},
		&cli.StringFlag{
			Name:  flagTrig,
			Usage: "also write trigger pulses to `FILE`",
		},
	}

	app := &cli.App{
		Name:            "cvquant",
		Usage:           "quantize 1 V/octave control voltages to a tuning table",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Before: r.before,
		After:  r.after,
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "quantize a CV recording",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: flagIn, Required: true, Usage: "input CV `FILE` (WAV)"},
					&cli.StringFlag{Name: flagOut, Required: true, Usage: "output CV `FILE` (WAV)"},
					&cli.BoolFlag{Name: flagWatch, Usage: "re-render whenever the table file changes, until interrupted"},
					&cli.IntFlag{Name: flagBlockSize, Value: 256, Usage: "samples per processing block"},
				}, quantizeFlags...),
				Action: r.render,
			},
			{
				Name:  "track",
				Usage: "pitch-track an audio recording and quantize the result",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: flagIn, Required: true, Usage: "input audio `FILE` (WAV)"},
					&cli.StringFlag{Name: flagOut, Required: true, Usage: "output CV `FILE` (WAV)"},
					&cli.IntFlag{Name: flagChannel, Usage: "audio channel to track"},
					&cli.IntFlag{Name: flagFrameSize, Value: 2048, Usage: "analysis frame size (power of two)"},
					&cli.IntFlag{Name: flagHopSize, Value: 512, Usage: "analysis hop size"},
					&cli.Float64Flag{Name: flagMinHz, Value: 40, Usage: "lowest tracked pitch in Hz"},
					&cli.Float64Flag{Name: flagMaxHz, Value: 4000, Usage: "highest tracked pitch in Hz"},
					&cli.StringFlag{Name: flagWindow, Value: "hann", Usage: "analysis window: rectangular, hann, hamming, blackman, blackman-harris"},
					&cli.BoolFlag{Name: flagKeepRaw, Usage: "write the unquantized tracked CV as a second channel"},
				}, quantizeFlags...),
				Action: r.track,
			},
			{
				Name:   "table",
				Usage:  "print a tuning table",
				Flags:  []cli.Flag{tableFlag},
				Action: r.table,
			},
			{
				Name:  "state",
				Usage: "write a saved state file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagMode, Required: true, Usage: "input mode: continuous or discrete"},
					&cli.StringFlag{Name: flagOut, Usage: "output `FILE`; stdout if empty"},
				},
				Action: r.state,
			},
		},
	}
	return app
}

func (r *runner) before(c *cli.Context) error {
	r.logger = newLogger(r.errOut, c.Bool(flagDebug))
	return nil
}

func (r *runner) after(*cli.Context) error {
	// Sync fails on unbuffered terminals; nothing useful to report.
	_ = r.logger.Sync()
	return nil
}

// newLogger builds a JSON info logger, or a console debug logger.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encoder := zapcore.NewJSONEncoder
	level := zap.InfoLevel
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder
		level = zap.DebugLevel
	}
	return zap.New(zapcore.NewCore(encoder(encCfg), zapcore.AddSync(w), level))
}
