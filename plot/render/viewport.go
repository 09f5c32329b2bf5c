package render

import "image"

// Canvas is the pixel area a plot is drawn into.
type Canvas struct {
	Width  int
	Height int
	Margin int
}

// DefaultCanvas is the 800x400 plot with a 40 pixel border.
var DefaultCanvas = Canvas{Width: 800, Height: 400, Margin: 40}

// PlotRect returns the area inside the margin, in canvas coordinates.
func (c Canvas) PlotRect() image.Rectangle {
	return image.Rect(c.Margin, c.Margin, c.Width-c.Margin, c.Height-c.Margin)
}

// dataPadding widens both data ranges before mapping. It compounds with the
// sampler's auto range margin.
const dataPadding = 0.05

// Viewport maps data coordinates to canvas pixels.
type Viewport struct {
	Canvas Canvas

	// Padded data bounds mapped onto the plot rectangle.
	X0, X1 float64
	Y0, Y1 float64
}

// NewViewport pads [xmin, xmax] and [ymin, ymax] by 5% of their span on each
// side. A zero width range is treated as a span of 1.
func NewViewport(c Canvas, xmin, xmax, ymin, ymax float64) Viewport {
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	dx := xmax - xmin
	if !(dx > 0) {
		dx = 1
	}
	dy := ymax - ymin
	if !(dy > 0) {
		dy = 1
	}
	return Viewport{
		Canvas: c,
		X0:     xmin - dataPadding*dx,
		X1:     xmax + dataPadding*dx,
		Y0:     ymin - dataPadding*dy,
		Y1:     ymax + dataPadding*dy,
	}
}

func (v Viewport) left() float64   { return float64(v.Canvas.Margin) }
func (v Viewport) right() float64  { return float64(v.Canvas.Width - v.Canvas.Margin) }
func (v Viewport) top() float64    { return float64(v.Canvas.Margin) }
func (v Viewport) bottom() float64 { return float64(v.Canvas.Height - v.Canvas.Margin) }

// MapX returns the pixel column of data x.
func (v Viewport) MapX(x float64) float64 {
	return v.left() + (x-v.X0)/(v.X1-v.X0)*(v.right()-v.left())
}

// MapY returns the pixel row of data y; larger y is higher on screen.
func (v Viewport) MapY(y float64) float64 {
	return v.bottom() - (y-v.Y0)/(v.Y1-v.Y0)*(v.bottom()-v.top())
}

// UnmapX is the inverse of MapX.
func (v Viewport) UnmapX(px float64) float64 {
	return v.X0 + (px-v.left())/(v.right()-v.left())*(v.X1-v.X0)
}

// UnmapY is the inverse of MapY.
func (v Viewport) UnmapY(py float64) float64 {
	return v.Y0 + (v.bottom()-py)/(v.bottom()-v.top())*(v.Y1-v.Y0)
}
