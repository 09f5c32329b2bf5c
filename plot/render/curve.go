package render

import (
	"math"

	"funcplot/plot/expr"
)

const (
	// curvePad extends the curve domain beyond the sampled one, in data units.
	curvePad = 1.0
	// MaxSlope is the |dy/dx| above which consecutive curve points are
	// treated as a jump across a discontinuity.
	MaxSlope = 100.0
)

// Point is a curve vertex in data coordinates.
type Point struct {
	X, Y float64
}

// Segment is a run of curve vertices to be joined with lines.
type Segment []Point

// Curve evaluates e at n+1 evenly spaced x values over [xmin-1, xmax+1] and
// splits the result into segments. A segment ends at an evaluation error, a
// non-finite value, a value outside [ymin, ymax], or a step steeper than
// MaxSlope.
func Curve(e *expr.Expr, xmin, xmax, ymin, ymax float64, n int) []Segment {
	if e == nil || n < 1 {
		return nil
	}
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	lo := xmin - curvePad
	hi := xmax + curvePad

	var segs []Segment
	var cur Segment
	flush := func() {
		if len(cur) > 0 {
			segs = append(segs, cur)
		}
		cur = nil
	}
	for i := 0; i <= n; i++ {
		x := lo + (hi-lo)*float64(i)/float64(n)
		y, err := e.Eval(x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) || y < ymin || y > ymax {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			if dx := x - prev.X; dx > 0 && math.Abs(y-prev.Y)/dx > MaxSlope {
				flush()
			}
		}
		cur = append(cur, Point{X: x, Y: y})
	}
	flush()
	return segs
}

// CurveSamples is the curve resolution for a canvas: two evaluations per
// horizontal pixel.
func CurveSamples(c Canvas) int {
	return 2 * c.Width
}
