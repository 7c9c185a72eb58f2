package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinyuangui2/morpho/raster"
)

// run executes the root command with args and returns its stderr.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// spots writes a 12×12 background of 5 with two bright pixels.
func spots(t *testing.T, path string) {
	t.Helper()
	r, err := raster.New(12, 12)
	require.NoError(t, err)
	for i := range r.Data {
		r.Data[i] = 5
	}
	r.Data[2*12+3] = 25
	r.Data[9*12+8] = 15
	require.NoError(t, raster.Write(path, r))
}

//----------------------------------------------------------------------------//
// extract
//----------------------------------------------------------------------------//

func TestExtract_WritesResult(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.f32.zst")
	out := filepath.Join(dir, "out.f32.zst")
	spots(t, in)

	logs, err := run(t, "extract", "--in", in, "--out", out,
		"--threshold", "1", "--log-format", "json", "--log-level", "debug")
	require.NoError(t, err, logs)

	res, err := raster.Open(out)
	require.NoError(t, err)
	assert.Equal(t, float32(20), res.At(2, 3))
	assert.Equal(t, float32(10), res.At(9, 8))
	assert.Zero(t, res.At(0, 0))

	assert.Contains(t, logs, `"message":"raster loaded"`)
	assert.Contains(t, logs, `"objects":2`)
	assert.Contains(t, logs, `"message":"object"`)
	assert.Contains(t, logs, `"message":"result written"`)
}

func TestExtract_OctagonToTIFF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.f32.zst")
	out := filepath.Join(dir, "out.tif")
	spots(t, in)

	_, err := run(t, "extract", "--in", in, "--out", out,
		"--element", "octagon", "--radius", "2", "--connectivity", "4", "--workers", "0",
		"--log-level", "warn")
	require.NoError(t, err)

	res, err := raster.Open(out)
	require.NoError(t, err)
	assert.Equal(t, float32(20), res.At(2, 3))
}

func TestExtract_Errors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.f32.zst")
	spots(t, in)
	out := filepath.Join(dir, "out.f32.zst")

	cases := []struct {
		name string
		args []string
	}{
		{"MissingIn", []string{"extract", "--out", out}},
		{"BadElement", []string{"extract", "--in", in, "--out", out, "--element", "disk"}},
		{"BadRect", []string{"extract", "--in", in, "--out", out, "--se-rows", "0"}},
		{"BadOut", []string{"extract", "--in", in, "--out", filepath.Join(dir, "out.png")}},
		{"BadLevel", []string{"extract", "--in", in, "--out", out, "--log-level", "loud"}},
		{"BadFormat", []string{"extract", "--in", in, "--out", out, "--log-format", "xml"}},
		{"BadConnectivity", []string{"extract", "--in", in, "--out", out, "--connectivity", "6"}},
		{"BadRadius", []string{"extract", "--in", in, "--out", out, "--element", "octagon", "--radius", "-1"}},
		{"MissingFile", []string{"extract", "--in", filepath.Join(dir, "none.tif"), "--out", out}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

// TestExtract_FloatResultToTIFF refuses to round a fractional result into
// a TIFF and leaves no output behind.
func TestExtract_FloatResultToTIFF(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.f32.zst")
	out := filepath.Join(dir, "out.tif")
	r, err := raster.New(5, 5)
	require.NoError(t, err)
	r.Data[12] = 2.5
	require.NoError(t, raster.Write(in, r))

	_, err = run(t, "extract", "--in", in, "--out", out, "--log-level", "error")
	assert.ErrorIs(t, err, raster.ErrFormat)
	assert.NoFileExists(t, out)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "info", "json")
	require.NoError(t, err)
	log.Debug().Msg("hidden")
	log.Info().Str("component", "cli").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"cli"`)

	buf.Reset()
	log, err = newLogger(&buf, "debug", "console")
	require.NoError(t, err)
	log.Debug().Msg("plain")
	assert.Contains(t, buf.String(), "plain")
}
