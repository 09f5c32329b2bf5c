// Package plotter is the interactive plotter task: it owns the application
// state, turns named events into state changes through Controller and
// repaints the plot, the value table and the form.
package plotter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"funcplot/plot/expr"
	"funcplot/plot/sampler"
	"funcplot/proto"
)

// ErrInvalidField reports a form field that is not a finite number.
var ErrInvalidField = errors.New("invalid field")

// Settings is the initial form content.
type Settings struct {
	Expr      string
	XMin      float64
	XMax      float64
	Step      float64
	YMin      float64
	YMax      float64
	AutoY     bool
	ShowCurve bool
}

// DefaultSettings plots x^2 over [-5, 5] with unit steps.
func DefaultSettings() Settings {
	return Settings{
		Expr:  "x^2",
		XMin:  -5,
		XMax:  5,
		Step:  1,
		YMin:  -10,
		YMax:  10,
		AutoY: true,
	}
}

// State is everything the plotter shows. It is owned by one Controller and
// only changed through its methods.
type State struct {
	// Form holds the raw text of every field, indexed by proto.Field.
	Form      [proto.FieldCount]string
	ShowCurve bool
	AutoY     bool

	// Focus is the form field receiving key input; Cursor is a rune offset
	// into it.
	Focus  proto.Field
	Cursor int

	// Expr and Set are the result of the last successful calculation.
	Expr     *expr.Expr
	Set      *sampler.SampleSet
	Selected int

	Status string
	// Calcs counts calculation attempts; LastErr is the outcome of the
	// latest one.
	Calcs   uint64
	LastErr error
}

func newState(s Settings) State {
	var st State
	st.Form[proto.FieldExpr] = s.Expr
	st.Form[proto.FieldXMin] = formatNumber(s.XMin)
	st.Form[proto.FieldXMax] = formatNumber(s.XMax)
	st.Form[proto.FieldStep] = formatNumber(s.Step)
	st.Form[proto.FieldYMin] = formatNumber(s.YMin)
	st.Form[proto.FieldYMax] = formatNumber(s.YMax)
	st.AutoY = s.AutoY
	st.ShowCurve = s.ShowCurve
	st.Selected = -1
	st.Cursor = len([]rune(s.Expr))
	return st
}

// Params parses the numeric fields. ymin and ymax are only read when the
// automatic range is off.
func (s *State) Params() (sampler.Params, error) {
	var p sampler.Params
	var err error
	if p.XMin, err = s.number(proto.FieldXMin); err != nil {
		return p, err
	}
	if p.XMax, err = s.number(proto.FieldXMax); err != nil {
		return p, err
	}
	if p.Step, err = s.number(proto.FieldStep); err != nil {
		return p, err
	}
	p.AutoY = s.AutoY
	if !p.AutoY {
		if p.YMin, err = s.number(proto.FieldYMin); err != nil {
			return p, err
		}
		if p.YMax, err = s.number(proto.FieldYMax); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (s *State) number(f proto.Field) (float64, error) {
	v, err := ParseNumber(s.Form[f])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidField, f, err)
	}
	return v, nil
}

// ParseNumber reads a field value. Besides plain decimals it accepts
// constant expressions such as "2*pi" or "-e".
func ParseNumber(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("empty")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		e, cerr := expr.Compile(text)
		if cerr != nil {
			return 0, fmt.Errorf("%q is not a number", text)
		}
		if !e.Constant() {
			return 0, fmt.Errorf("%q depends on x", text)
		}
		if v, err = e.Eval(0); err != nil {
			return 0, err
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", text)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
