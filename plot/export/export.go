// Package export writes a sampled function to an image or document file
// using gonum/plot: the samples as a scatter, the continuous curve as one
// line per segment and the selected sample with a crosshair.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"funcplot/plot/expr"
	"funcplot/plot/render"
	"funcplot/plot/sampler"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNoSamples         = errors.New("nothing to export")
)

// Formats lists the file extensions Save accepts.
var Formats = []string{"png", "svg", "pdf"}

// Options controls the exported figure.
type Options struct {
	Title     string
	Width     vg.Length
	Height    vg.Length
	ShowCurve bool
	// Selected is the sample to mark, or -1.
	Selected int
	// CurveSamples is the curve resolution; 0 uses the window default.
	CurveSamples int
}

// DefaultOptions matches the proportions of the on-screen canvas.
func DefaultOptions() Options {
	return Options{
		Width:        20 * vg.Centimeter,
		Height:       10 * vg.Centimeter,
		Selected:     -1,
		CurveSamples: render.CurveSamples(render.DefaultCanvas),
	}
}

// FormatOf returns the lower-case format name for path's extension.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Formats {
		if ext == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Save writes the figure to path, choosing the format from its extension.
func Save(set *sampler.SampleSet, e *expr.Expr, opts Options, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, set, e, opts, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write renders the figure in the given format to w.
func Write(w io.Writer, set *sampler.SampleSet, e *expr.Expr, opts Options, format string) error {
	p, err := Build(set, e, opts)
	if err != nil {
		return err
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		d := DefaultOptions()
		width, height = d.Width, d.Height
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Build assembles the gonum plot for set without writing it.
func Build(set *sampler.SampleSet, e *expr.Expr, opts Options) (*plot.Plot, error) {
	if set == nil {
		return nil, ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" && e != nil {
		p.Title.Text = "y = " + e.Source()
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = set.XMin, set.XMax
	p.Y.Min, p.Y.Max = set.YMin, set.YMax
	p.Add(plotter.NewGrid())

	if opts.ShowCurve && e != nil {
		n := opts.CurveSamples
		if n <= 0 {
			n = render.CurveSamples(render.DefaultCanvas)
		}
		for i, seg := range render.Curve(e, set.XMin, set.XMax, set.YMin, set.YMax, n) {
			line, err := plotter.NewLine(segmentXYs(seg))
			if err != nil {
				return nil, err
			}
			line.LineStyle.Color = render.ColorCurve
			line.LineStyle.Width = vg.Points(1)
			p.Add(line)
			if i == 0 {
				p.Legend.Add("f(x)", line)
			}
		}
	}

	if xys := sampleXYs(set.Samples); len(xys) > 0 {
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = render.ColorPoint
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add("samples", sc)
	}

	if s, ok := set.At(opts.Selected); ok && finite(s.Y) {
		if err := addSelection(p, set, s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func addSelection(p *plot.Plot, set *sampler.SampleSet, s sampler.Sample) error {
	dashes := []vg.Length{vg.Points(3), vg.Points(3)}
	cross := []plotter.XYs{
		{{X: s.X, Y: set.YMin}, {X: s.X, Y: set.YMax}},
		{{X: set.XMin, Y: s.Y}, {X: set.XMax, Y: s.Y}},
	}
	for _, xys := range cross {
		l, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		l.LineStyle.Color = render.ColorCrosshair
		l.LineStyle.Dashes = dashes
		p.Add(l)
	}

	mark, err := plotter.NewScatter(plotter.XYs{{X: s.X, Y: s.Y}})
	if err != nil {
		return err
	}
	mark.GlyphStyle.Color = color.Black
	mark.GlyphStyle.Shape = draw.RingGlyph{}
	mark.GlyphStyle.Radius = vg.Points(6)
	p.Add(mark)
	p.Legend.Add(fmt.Sprintf("(%.2f, %.2f)", s.X, s.Y), mark)
	return nil
}

// sampleXYs drops infinite values, which gonum/plot rejects.
func sampleXYs(samples []sampler.Sample) plotter.XYs {
	xys := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		if finite(s.Y) {
			xys = append(xys, plotter.XY{X: s.X, Y: s.Y})
		}
	}
	return xys
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func segmentXYs(seg render.Segment) plotter.XYs {
	xys := make(plotter.XYs, len(seg))
	for i, pt := range seg {
		xys[i].X, xys[i].Y = pt.X, pt.Y
	}
	return xys
}
