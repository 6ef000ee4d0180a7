// Command bpsmooth smooths a bandpass calibration solution.
//
// Usage:
//
//	bpsmooth [flags] <input.bin> <output.npy>
//
// The input is an AO-calibrate solution (.bin) or a NumPy array (.npy). The
// output holds one solution interval of smoothed gains with NaN in the
// cross polarizations.
//
// Examples:
//
//	bpsmooth solutions.bin smoothed.npy
//	bpsmooth --flag-chan 0-3,764-767 --refant 12 solutions.bin smoothed.npy
//	bpsmooth --max-degree 5 --plot-dir plots --log-level debug in.bin out.npy
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-bandpass/calsol"
	"github.com/cwbudde/algo-bandpass/diagplot"
	"github.com/cwbudde/algo-bandpass/smooth"
)

var errUsage = errors.New("usage: bpsmooth [flags] <input> <output.npy>")

type options struct {
	flagChan  string
	refAnt    int
	maxDegree int
	loops     int
	workers   int
	solution  int
	plotDir   string
	logLevel  logger.Level
	input     string
	output    string
}

func parseArgs(args []string) (options, error) {
	opts := options{logLevel: logger.LevelInfo}

	fs := pflag.NewFlagSet("bpsmooth", pflag.ContinueOnError)
	fs.StringVar(&opts.flagChan, "flag-chan", "", "channels to flag, e.g. 0-3,100")
	fs.IntVar(&opts.refAnt, "refant", -1, "reference antenna (negative selects the least flagged)")
	fs.IntVar(&opts.maxDegree, "max-degree", 3, "highest amplitude polynomial degree")
	fs.IntVar(&opts.loops, "loops", 3, "clipping passes per amplitude step")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "units smoothed concurrently")
	fs.IntVar(&opts.solution, "solution", 0, "solution interval to smooth")
	fs.StringVar(&opts.plotDir, "plot-dir", "", "write per-unit diagnostic plots into this directory")
	fs.Var(&opts.logLevel, "log-level", "log level")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() != 2 {
		return options{}, fmt.Errorf("%w: expected 2 arguments, got %d", errUsage, fs.NArg())
	}

	opts.input, opts.output = fs.Arg(0), fs.Arg(1)

	return opts, nil
}

func run(ctx context.Context, opts options) error {
	raw, err := calsol.Load(opts.input)
	if err != nil {
		return err
	}

	logger.Infof(ctx, "loaded %s: %v (sol, ant, chan, pol)", opts.input, raw.Shape())

	mask, err := calsol.ParseChannelMask(opts.flagChan)
	if err != nil {
		return err
	}

	engineOpts := []smooth.Option{
		smooth.WithMaxDegree(opts.maxDegree),
		smooth.WithLoops(opts.loops),
		smooth.WithWorkers(opts.workers),
		smooth.WithSolution(opts.solution),
		smooth.WithReferenceAntenna(opts.refAnt),
		smooth.WithChannelMask(mask),
	}

	if opts.plotDir != "" {
		sink, err := diagplot.New(opts.plotDir)
		if err != nil {
			return err
		}

		engineOpts = append(engineOpts, smooth.WithDiagnostics(sink))
	}

	engine, err := smooth.NewEngine(engineOpts...)
	if err != nil {
		return err
	}

	out, ref, err := engine.Smooth(ctx, raw)
	if err != nil {
		return err
	}

	if err := calsol.Save(opts.output, out); err != nil {
		return err
	}

	logger.Infof(ctx, "wrote %s (reference antenna %d)", opts.output, ref)

	return nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	l := logrus.Default().WithLevel(opts.logLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}

	if err := run(ctx, opts); err != nil {
		logger.Errorf(ctx, "%v", err)
		belt.Flush(ctx)
		os.Exit(1)
	}

	belt.Flush(ctx)
}
