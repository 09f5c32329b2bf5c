package render

import (
	"math"
	"strconv"
	"strings"
)

// MaxXTicks bounds XTicks; wider integer spans get no x ticks at all.
const MaxXTicks = 400

// XTicks returns every integer in [ceil(xmin), floor(xmax)].
func XTicks(xmin, xmax float64) []int {
	if math.IsNaN(xmin) || math.IsNaN(xmax) || math.IsInf(xmin, 0) || math.IsInf(xmax, 0) {
		return nil
	}
	lo := math.Ceil(xmin)
	hi := math.Floor(xmax)
	if lo > hi || hi-lo+1 > MaxXTicks {
		return nil
	}
	out := make([]int, 0, int(hi-lo)+1)
	for x := int(lo); x <= int(hi); x++ {
		out = append(out, x)
	}
	return out
}

// YTickStep picks the y tick spacing for a display range: a tenth of the
// range's order of magnitude, coarsened when that gives more than 15 ticks.
func YTickStep(ymin, ymax float64) float64 {
	yRange := ymax - ymin
	if !(yRange > 0) || math.IsInf(yRange, 0) {
		return 0
	}
	magnitude := math.Floor(math.Log10(yRange))
	// Log10 can land just below an exact power of ten.
	if math.Pow(10, magnitude+1) <= yRange {
		magnitude++
	}
	step := math.Pow(10, magnitude-1)
	n := yRange / step
	if n > 15 {
		switch {
		case n <= 30:
			step *= 2
		case n <= 75:
			step *= 5
		default:
			step *= math.Ceil(n / 20)
		}
	}
	return step
}

// YTicks returns the tick values from ceil(ymin/step)*step up to ymax.
func YTicks(ymin, ymax float64) []float64 {
	step := YTickStep(ymin, ymax)
	if step <= 0 {
		return nil
	}
	first := math.Ceil(ymin/step) * step
	// Ticks are computed by index so rounding does not accumulate; the
	// tolerance keeps a tick that lands on ymax.
	limit := ymax + step*1e-9
	var out []float64
	for i := 0; ; i++ {
		y := first + float64(i)*step
		if y > limit {
			break
		}
		out = append(out, y)
	}
	return out
}

// YTickLabel formats a y tick: "0" near zero, otherwise three significant
// digits.
func YTickLabel(y float64) string {
	if math.Abs(y) < 1e-10 {
		return "0"
	}
	return toPrecision(y, 3)
}

// toPrecision formats v with p significant digits, switching to exponent
// notation (1.23e+5) when the exponent is below -6 or at least p.
func toPrecision(v float64, p int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 1) {
		return "Infinity"
	}
	if math.IsInf(v, -1) {
		return "-Infinity"
	}
	if p < 1 {
		p = 1
	}
	if v == 0 {
		return strconv.FormatFloat(0, 'f', p-1, 64)
	}

	sci := strconv.FormatFloat(v, 'e', p-1, 64)
	mant, expText, _ := strings.Cut(sci, "e")
	exp, err := strconv.Atoi(expText)
	if err != nil {
		return sci
	}
	if exp < -6 || exp >= p {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		return mant + "e" + sign + strconv.Itoa(exp)
	}
	return strconv.FormatFloat(v, 'f', p-1-exp, 64)
}
