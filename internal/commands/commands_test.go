package commands

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"funcplot/internal/config"
	"funcplot/plot/export"
	"funcplot/plot/expr"
	"funcplot/plot/sampler"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRoot()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-file", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestTablePrintsSamples(t *testing.T) {
	out, err := run(t, "table", "--expr", "x^2", "--xmin", "-2", "--xmax", "2", "--select", "2", "--width", "0")
	require.NoError(t, err)
	require.Contains(t, out, "y = x^2: 5 samples")
	require.Contains(t, out, "-2.00")
	require.Contains(t, out, "4.00")
	require.Contains(t, out, "y in [-0.4, 4.4]")
}

func TestTableReportsSkips(t *testing.T) {
	out, err := run(t, "table", "-e", "1/x", "--xmin", "-1", "--xmax", "1", "--step", "0.5")
	require.NoError(t, err)
	require.Contains(t, out, "4 samples, 1 skipped")
	require.Contains(t, out, "skipped x=0.00")
}

func TestTableRejectsBadInput(t *testing.T) {
	_, err := run(t, "table", "--expr", "sin(")
	require.ErrorIs(t, err, expr.ErrParse)

	_, err = run(t, "table", "--step", "0")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "table", "--auto-y=false", "--ymin", "1", "--ymax", "1")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "table", "--xmin", "0", "--xmax", "1e9", "--step", "1e-3")
	require.ErrorIs(t, err, sampler.ErrTooManySamples)
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funcplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plot:\n  expr: 2*x\n  xmin: 0\n  xmax: 3\n"), 0o644))

	out, err := run(t, "table", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "y = 2*x: 4 samples")

	out, err = run(t, "table", "--config", path, "--xmax", "1")
	require.NoError(t, err)
	require.Contains(t, out, "y = 2*x: 2 samples")
}

func TestExportWritesFigure(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "plot.svg")
	out, err := run(t, "export", "-o", svg, "--expr", "sin(x)", "--curve", "--select", "3")
	require.NoError(t, err)
	require.Contains(t, out, "wrote "+svg)

	b, err := os.ReadFile(svg)
	require.NoError(t, err)
	require.Contains(t, string(b), "<svg")
	require.Contains(t, string(b), "y = sin(x)")

	_, err = run(t, "export", "-o", filepath.Join(dir, "plot.bmp"))
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestRenderWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	_, err := run(t, "render", "-o", path, "--expr", "x^3", "--log-level", "error")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 800, img.Bounds().Dx())
	require.Equal(t, 484, img.Bounds().Dy())
}

func TestRenderFailsOnBadFormula(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	_, err := run(t, "render", "-o", path, "--expr", "foo(x)", "--log-level", "error")
	require.ErrorIs(t, err, expr.ErrUnknownFunc)
	require.NoFileExists(t, path)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "funcplot ")
}

func TestUnknownArgs(t *testing.T) {
	_, err := run(t, "table", "extra")
	require.Error(t, err)
	_, err = run(t, "table", "--nope")
	require.Error(t, err)
}
