package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bandpass/calsol"
	"github.com/cwbudde/algo-bandpass/internal/testutil"
	"github.com/cwbudde/algo-bandpass/smooth"
)

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{
		"--flag-chan", "0-3", "--refant", "2", "--max-degree", "5", "--loops", "2",
		"--workers", "4", "--solution", "1", "--plot-dir", "plots", "--log-level", "debug",
		"in.bin", "out.npy",
	})
	require.NoError(t, err)

	assert.Equal(t, "0-3", opts.flagChan)
	assert.Equal(t, 2, opts.refAnt)
	assert.Equal(t, 5, opts.maxDegree)
	assert.Equal(t, 2, opts.loops)
	assert.Equal(t, 4, opts.workers)
	assert.Equal(t, 1, opts.solution)
	assert.Equal(t, "plots", opts.plotDir)
	assert.Equal(t, logger.LevelDebug, opts.logLevel)
	assert.Equal(t, "in.bin", opts.input)
	assert.Equal(t, "out.npy", opts.output)
}

func TestParseArgsDefaults(t *testing.T) {
	opts, err := parseArgs([]string{"in.bin", "out.npy"})
	require.NoError(t, err)

	assert.Equal(t, -1, opts.refAnt)
	assert.Equal(t, 3, opts.maxDegree)
	assert.Equal(t, logger.LevelInfo, opts.logLevel)
}

func TestParseArgsErrors(t *testing.T) {
	_, err := parseArgs([]string{"in.bin"})
	assert.ErrorIs(t, err, errUsage)

	_, err = parseArgs([]string{"--bogus", "in.bin", "out.npy"})
	assert.Error(t, err)

	_, err = parseArgs([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "solutions.bin")
	require.NoError(t, calsol.Save(path, testutil.SyntheticBandpass(4, 40, 4, 0.01, 1)))

	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	plots := filepath.Join(dir, "plots")

	opts, err := parseArgs([]string{
		"--flag-chan", "0-1", "--plot-dir", plots, "--workers", "2",
		writeInput(t, dir), filepath.Join(dir, "smoothed.npy"),
	})
	require.NoError(t, err)

	require.NoError(t, run(context.Background(), opts))

	out, err := calsol.Load(opts.output)
	require.NoError(t, err)
	assert.Equal(t, [4]int{1, 4, 40, 4}, out.Shape())

	testutil.RequireAllComplexNaN(t, out.Curve(0, 3, 1))

	for _, v := range out.Curve(0, 3, 0) {
		assert.True(t, calsol.IsValid(v))
	}

	entries, err := os.ReadDir(plots)
	require.NoError(t, err)
	assert.Len(t, entries, 4*2*2)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	output := filepath.Join(dir, "out.npy")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing input", []string{filepath.Join(dir, "nope.bin"), output}, os.ErrNotExist},
		{"bad channel spec", []string{"--flag-chan", "3-x", input, output}, calsol.ErrChannelSpec},
		{"channel out of range", []string{"--flag-chan", "40", input, output}, calsol.ErrChannelRange},
		{"bad reference", []string{"--refant", "9", input, output}, smooth.ErrConfig},
		{"bad degree", []string{"--max-degree", "9", input, output}, smooth.ErrConfig},
		{"unknown output format", []string{input, filepath.Join(dir, "out.txt")}, calsol.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(tt.args)
			require.NoError(t, err)

			assert.ErrorIs(t, run(context.Background(), opts), tt.want)
		})
	}
}
