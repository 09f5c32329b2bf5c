// Package render draws a sampled function onto an RGB565 framebuffer: axes,
// ticks, sample points, the selection crosshair and the continuous curve.
package render

// This file contains the scene renderer. Geometry lives in viewport.go,
// ticks.go, pick.go and curve.go so it can be tested without pixels.

import (
	"image"
	"image/color"
	"strconv"

	"funcplot/plot/expr"
	"funcplot/plot/sampler"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	ColorBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorAxis       = color.RGBA{R: 100, G: 100, B: 100, A: 0xFF}
	ColorTick       = color.RGBA{R: 200, G: 200, B: 200, A: 0xFF}
	ColorLabel      = color.RGBA{R: 150, G: 150, B: 150, A: 0xFF}
	ColorCrosshair  = color.RGBA{R: 150, G: 150, B: 150, A: 0xFF}
	ColorPoint      = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
	ColorHalo       = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	ColorCurve      = color.RGBA{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF}
)

const (
	pointRadius = 3
	haloRadius  = 5
	tickHalf    = 5
	arrowSize   = 6
	dashOn      = 5
	dashOff     = 5

	// Metrics of proggy TinySZ8pt7b.
	fontAscent = 8
	fontHeight = 11
)

// Font is the face used for every label drawn by this package.
var Font = &proggy.TinySZ8pt7b

// Scene is everything one redraw depends on.
type Scene struct {
	Set       *sampler.SampleSet
	Expr      *expr.Expr
	Selected  int
	ShowCurve bool
}

// Renderer draws scenes into a canvas placed at Origin on the display.
type Renderer struct {
	d      *Display
	canvas Canvas
	origin image.Point
}

// New returns a Renderer drawing canvas at origin on d.
func New(d *Display, canvas Canvas, origin image.Point) *Renderer {
	return &Renderer{d: d, canvas: canvas, origin: origin}
}

// Canvas returns the canvas size and margin.
func (r *Renderer) Canvas() Canvas { return r.canvas }

// Origin returns the canvas's top-left corner on the display.
func (r *Renderer) Origin() image.Point { return r.origin }

// Bounds returns the canvas area in display coordinates.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.canvas.Width, r.canvas.Height).Add(r.origin)
}

// Viewport returns the data-to-canvas mapping for set.
func (r *Renderer) Viewport(set *sampler.SampleSet) Viewport {
	if set == nil {
		return NewViewport(r.canvas, -1, 1, -1, 1)
	}
	return NewViewport(r.canvas, set.XMin, set.XMax, set.YMin, set.YMax)
}

// Pick maps a display pixel into the canvas and returns the nearest sample
// index, or -1.
func (r *Renderer) Pick(set *sampler.SampleSet, x, y int) int {
	p := image.Pt(x, y).Sub(r.origin)
	return Pick(set, r.Viewport(set), float64(p.X), float64(p.Y))
}

// Draw repaints the whole canvas from s.
func (r *Renderer) Draw(s Scene) {
	_ = r.d.FillRectangle(int16(r.origin.X), int16(r.origin.Y), int16(r.canvas.Width), int16(r.canvas.Height), ColorBackground)
	if s.Set == nil {
		return
	}

	vp := r.Viewport(s.Set)
	ax, ay := r.axes(vp)
	r.xTicks(vp, s.Set, ay)
	r.yTicks(vp, s.Set, ax)

	sel, hasSel := s.Set.At(s.Selected)
	if hasSel {
		r.crosshair(vp, sel)
	}
	r.points(vp, s.Set, s.Selected)

	if s.ShowCurve && s.Expr != nil {
		segs := Curve(s.Expr, s.Set.XMin, s.Set.XMax, s.Set.YMin, s.Set.YMax, CurveSamples(r.canvas))
		r.curve(vp, segs)
	}
}

// px converts a canvas coordinate to a display coordinate.
func (r *Renderer) px(x, y float64) (int16, int16) {
	return roundInt16(x) + int16(r.origin.X), roundInt16(y) + int16(r.origin.Y)
}

// axes draws both axes through the data origin, clamped to the plot
// rectangle when zero is not visible, and returns their canvas positions.
func (r *Renderer) axes(vp Viewport) (ax, ay float64) {
	pr := r.canvas.PlotRect()
	left, right := float64(pr.Min.X), float64(pr.Max.X)
	top, bottom := float64(pr.Min.Y), float64(pr.Max.Y)

	ax = clampFloat(vp.MapX(0), left, right)
	ay = clampFloat(vp.MapY(0), top, bottom)

	x0, y0 := r.px(left, ay)
	x1, y1 := r.px(right, ay)
	r.d.Line(x0, y0, x1, y1, ColorAxis)
	r.d.Line(x1, y1, x1-arrowSize, y1-arrowSize/2, ColorAxis)
	r.d.Line(x1, y1, x1-arrowSize, y1+arrowSize/2, ColorAxis)
	r.text(x1+4, y1+fontAscent/2, "x", ColorAxis)

	x0, y0 = r.px(ax, bottom)
	x1, y1 = r.px(ax, top)
	r.d.Line(x0, y0, x1, y1, ColorAxis)
	r.d.Line(x1, y1, x1-arrowSize/2, y1+arrowSize, ColorAxis)
	r.d.Line(x1, y1, x1+arrowSize/2, y1+arrowSize, ColorAxis)
	r.text(x1-textWidth("y")/2, y1-4, "y", ColorAxis)
	return ax, ay
}

func (r *Renderer) xTicks(vp Viewport, set *sampler.SampleSet, ay float64) {
	for _, x := range XTicks(set.XMin, set.XMax) {
		cx, cy := r.px(vp.MapX(float64(x)), ay)
		r.d.Line(cx, cy-tickHalf, cx, cy+tickHalf, ColorTick)
		label := strconv.Itoa(x)
		r.text(cx-textWidth(label)/2, cy+tickHalf+fontAscent+2, label, ColorLabel)
	}
}

func (r *Renderer) yTicks(vp Viewport, set *sampler.SampleSet, ax float64) {
	for _, y := range YTicks(set.YMin, set.YMax) {
		cx, cy := r.px(ax, vp.MapY(y))
		r.d.Line(cx-tickHalf, cy, cx+tickHalf, cy, ColorTick)
		label := YTickLabel(y)
		r.text(cx-tickHalf-3-textWidth(label), cy+fontAscent/2, label, ColorLabel)
	}
}

func (r *Renderer) crosshair(vp Viewport, s sampler.Sample) {
	pr := r.canvas.PlotRect()
	sx, sy := vp.MapX(s.X), vp.MapY(s.Y)

	x0, y0 := r.px(sx, float64(pr.Min.Y))
	x1, y1 := r.px(sx, float64(pr.Max.Y))
	r.d.DashedLine(x0, y0, x1, y1, ColorCrosshair, dashOn, dashOff)

	x0, y0 = r.px(float64(pr.Min.X), sy)
	x1, y1 = r.px(float64(pr.Max.X), sy)
	r.d.DashedLine(x0, y0, x1, y1, ColorCrosshair, dashOn, dashOff)
}

func (r *Renderer) points(vp Viewport, set *sampler.SampleSet, selected int) {
	for i, s := range set.Samples {
		cx, cy := r.px(vp.MapX(s.X), vp.MapY(s.Y))
		if i == selected {
			r.d.FillCircle(cx, cy, haloRadius, ColorHalo)
		}
		r.d.FillCircle(cx, cy, pointRadius, ColorPoint)
	}
}

func (r *Renderer) curve(vp Viewport, segs []Segment) {
	pr := r.canvas.PlotRect()
	xmin, ymin := float64(pr.Min.X), float64(pr.Min.Y)
	xmax, ymax := float64(pr.Max.X), float64(pr.Max.Y)
	for _, seg := range segs {
		if len(seg) == 1 {
			cx, cy := vp.MapX(seg[0].X), vp.MapY(seg[0].Y)
			if cx >= xmin && cx <= xmax && cy >= ymin && cy <= ymax {
				x, y := r.px(cx, cy)
				r.d.SetPixel(x, y, ColorCurve)
			}
			continue
		}
		for i := 1; i < len(seg); i++ {
			cx0, cy0, cx1, cy1, ok := clipLineToRect(
				vp.MapX(seg[i-1].X), vp.MapY(seg[i-1].Y),
				vp.MapX(seg[i].X), vp.MapY(seg[i].Y),
				xmin, ymin, xmax, ymax,
			)
			if !ok {
				continue
			}
			x0, y0 := r.px(cx0, cy0)
			x1, y1 := r.px(cx1, cy1)
			r.d.Line(x0, y0, x1, y1, ColorCurve)
		}
	}
}

func (r *Renderer) text(x, y int16, s string, c color.RGBA) {
	r.d.Text(x, y, s, c)
}

// Text draws s with its baseline at display row y.
func (d *Display) Text(x, y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(d, Font, x, y, s, c)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int16 { return textWidth(s) }

// FontAscent and FontHeight describe the label font for callers that lay out
// text rows.
const (
	FontAscent = fontAscent
	FontHeight = fontHeight
)

func textWidth(s string) int16 {
	_, w := tinyfont.LineWidth(Font, s)
	return int16(w)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
