// Package table projects a SampleSet and the current selection into the
// two-row value table shown under the plot.
package table

import (
	"math"
	"strconv"

	"funcplot/plot/sampler"
)

const (
	HeaderX = "x"
	HeaderY = "y = f(x)"
)

// Table is a pure view of a SampleSet: column i holds sample i.
type Table struct {
	X        []string
	Y        []string
	Selected int
}

// Project formats every sample with two decimals. A selection outside the
// set is reported as -1.
func Project(set *sampler.SampleSet, selected int) Table {
	n := set.Len()
	t := Table{
		X:        make([]string, n),
		Y:        make([]string, n),
		Selected: -1,
	}
	for i := 0; i < n; i++ {
		s := set.Samples[i]
		t.X[i] = Format(s.X)
		t.Y[i] = Format(s.Y)
	}
	if selected >= 0 && selected < n {
		t.Selected = selected
	}
	return t
}

// Len returns the number of value columns.
func (t Table) Len() int { return len(t.X) }

// Format renders v with exactly two decimals.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}
