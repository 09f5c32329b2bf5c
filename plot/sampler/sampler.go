// Package sampler evaluates a compiled expression over an evenly spaced
// domain and derives the y-range used for display.
package sampler

import (
	"errors"
	"fmt"
	"math"

	"funcplot/plot/expr"
)

var (
	ErrInvalidStep    = errors.New("step must be a positive finite number")
	ErrInvalidDomain  = errors.New("domain bounds must be finite")
	ErrInvalidRange   = errors.New("manual y range must satisfy ymin < ymax")
	ErrTooManySamples = errors.New("too many samples")
)

// MaxSamples bounds the number of candidate x values in one SampleSet.
const MaxSamples = 100000

const (
	autoMargin     = 0.1
	degenerateSpan = 1e-10
	countTolerance = 1e-9
)

// Sample is one evaluated point.
type Sample struct {
	X, Y float64
}

// Skip records an x value at which the expression was undefined.
type Skip struct {
	X   float64
	Err error
}

// Params describes one sampling request.
type Params struct {
	XMin, XMax float64
	Step       float64

	// AutoY derives the y-range from the samples; otherwise YMin and YMax
	// are used verbatim.
	AutoY      bool
	YMin, YMax float64
}

// SampleSet is the result of one calculation. Samples are ordered by x.
type SampleSet struct {
	Samples []Sample
	Skipped []Skip

	XMin, XMax float64
	YMin, YMax float64
}

// Len returns the number of samples.
func (s *SampleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Samples)
}

// At returns sample i and whether i is in range.
func (s *SampleSet) At(i int) (Sample, bool) {
	if s == nil || i < 0 || i >= len(s.Samples) {
		return Sample{}, false
	}
	return s.Samples[i], true
}

// Candidates returns how many x values a request visits.
func Candidates(xmin, xmax, step float64) (int, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStep, step)
	}
	if math.IsNaN(xmin) || math.IsNaN(xmax) || math.IsInf(xmin, 0) || math.IsInf(xmax, 0) {
		return 0, fmt.Errorf("%w: [%v, %v]", ErrInvalidDomain, xmin, xmax)
	}
	if xmin > xmax {
		return 0, nil
	}
	n := math.Floor((xmax-xmin)/step + countTolerance)
	if n+1 > MaxSamples {
		return 0, fmt.Errorf("%w: %.0f exceeds %d", ErrTooManySamples, n+1, MaxSamples)
	}
	return int(n) + 1, nil
}

// Run evaluates e over the requested domain. Evaluation failures at
// individual x values are recorded in Skipped; everything else is fatal.
func Run(e *expr.Expr, p Params) (*SampleSet, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: no expression", expr.ErrParse)
	}
	n, err := Candidates(p.XMin, p.XMax, p.Step)
	if err != nil {
		return nil, err
	}
	if !p.AutoY {
		if err := checkManual(p.YMin, p.YMax); err != nil {
			return nil, err
		}
	}

	set := &SampleSet{
		Samples: make([]Sample, 0, n),
		XMin:    p.XMin,
		XMax:    p.XMax,
	}
	for i := 0; i < n; i++ {
		x := p.XMin + float64(i)*p.Step
		// The count tolerance can admit a last x just past the bound.
		if x > p.XMax {
			x = p.XMax
		}
		y, err := e.Eval(x)
		if err != nil {
			set.Skipped = append(set.Skipped, Skip{X: x, Err: err})
			continue
		}
		set.Samples = append(set.Samples, Sample{X: x, Y: y})
	}

	if p.AutoY {
		set.YMin, set.YMax = AutoRange(set.Samples)
	} else {
		set.YMin, set.YMax = p.YMin, p.YMax
	}
	return set, nil
}

// SampleSource compiles src and samples it. The compiled expression is
// returned so callers can reuse it for the continuous curve.
func SampleSource(src string, p Params) (*expr.Expr, *SampleSet, error) {
	e, err := expr.Compile(src)
	if err != nil {
		return nil, nil, err
	}
	set, err := Run(e, p)
	if err != nil {
		return nil, nil, err
	}
	return e, set, nil
}

// AutoRange returns the finite y extent of samples widened by 10% of the span
// on each side. A span below 1e-10 yields [-1, 1]; no finite value yields
// [-10, 10].
func AutoRange(samples []Sample) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		if math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			continue
		}
		lo = math.Min(lo, s.Y)
		hi = math.Max(hi, s.Y)
	}
	if lo > hi {
		return -10, 10
	}
	span := hi - lo
	if span < degenerateSpan {
		return -1, 1
	}
	return lo - span*autoMargin, hi + span*autoMargin
}

func checkManual(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo >= hi {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}
	return nil
}
