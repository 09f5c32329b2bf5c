package render

import (
	"image/color"
	"math"

	"funcplot/hal"

	"tinygo.org/x/drivers"
)

// Display adapts an RGB565 framebuffer to drivers.Displayer so tinyfont and
// the drawing helpers below can target it.
type Display struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*Display)(nil)

func NewDisplay(fb hal.Framebuffer) *Display {
	return &Display{fb: fb}
}

func (d *Display) Framebuffer() hal.Framebuffer { return d.fb }

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Pixel returns the color stored at (x, y), expanded back to 8 bits per
// channel. Out of range coordinates return the zero color.
func (d *Display) Pixel(x, y int) color.RGBA {
	if d.fb == nil || x < 0 || y < 0 || x >= d.fb.Width() || y >= d.fb.Height() {
		return color.RGBA{}
	}
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return color.RGBA{}
	}
	r, g, b := hal.RGB888From565(uint16(buf[off]) | uint16(buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// Line draws a one pixel wide line with Bresenham's algorithm.
func (d *Display) Line(x0, y0, x1, y1 int16, c color.RGBA) {
	d.pattern(x0, y0, x1, y1, c, 0, 0)
}

// DashedLine draws a line that alternates on pixels drawn and off pixels
// skipped, starting with a drawn run.
func (d *Display) DashedLine(x0, y0, x1, y1 int16, c color.RGBA, on, off int) {
	d.pattern(x0, y0, x1, y1, c, on, off)
}

func (d *Display) pattern(x0, y0, x1, y1 int16, c color.RGBA, on, off int) {
	dx := int(math.Abs(float64(x1 - x0)))
	dy := -int(math.Abs(float64(y1 - y0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	period := on + off
	err := dx + dy
	for i := 0; ; i++ {
		if period <= 0 || on <= 0 || i%period < on {
			d.SetPixel(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += int16(sx)
		}
		if e2 <= dx {
			err += dx
			y0 += int16(sy)
		}
	}
}

// FillCircle fills the disc of radius r centred on (cx, cy).
func (d *Display) FillCircle(cx, cy, r int16, c color.RGBA) {
	if r <= 0 {
		d.SetPixel(cx, cy, c)
		return
	}
	rr := int(r)*int(r) + int(r)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if int(dx)*int(dx)+int(dy)*int(dy) <= rr {
				d.SetPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundInt16(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v < 0 {
		return int16(v - 0.5)
	}
	return int16(v + 0.5)
}

// clipLineToRect clips a segment to the rectangle with Liang-Barsky.
func clipLineToRect(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	u1 := 0.0
	u2 := 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			if t > u1 {
				u1 = t
			}
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			if t < u2 {
				u2 = t
			}
		}
	}

	cx0 = math.Min(math.Max(x0+u1*dx, xmin), xmax)
	cy0 = math.Min(math.Max(y0+u1*dy, ymin), ymax)
	cx1 = math.Min(math.Max(x0+u2*dx, xmin), xmax)
	cy1 = math.Min(math.Max(y0+u2*dy, ymin), ymax)
	return cx0, cy0, cx1, cy1, true
}
