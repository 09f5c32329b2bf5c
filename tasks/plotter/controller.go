package plotter

import (
	"fmt"
	"image"

	"funcplot/plot/expr"
	"funcplot/plot/sampler"
	"funcplot/proto"
)

const maxFieldRunes = 256

// Controller applies named events to a State. Calculation failures never
// touch the previous expression, samples or selection; they only replace
// the status message.
type Controller struct {
	st       State
	compiler *expr.Compiler
	view     *View
}

// NewController starts from s without calculating. A nil compiler gets a
// private one.
func NewController(c *expr.Compiler, s Settings) *Controller {
	if c == nil {
		c = expr.NewCompiler(0)
	}
	return &Controller{st: newState(s), compiler: c}
}

// SetView attaches the screen layout used to resolve clicks.
func (c *Controller) SetView(v *View) { c.view = v }

// State returns the current state. Callers must not modify it.
func (c *Controller) State() *State { return &c.st }

// SetExpression replaces the expression text without recalculating.
func (c *Controller) SetExpression(text string) {
	c.SetField(proto.FieldExpr, text)
}

// SetField replaces the text of field f without recalculating.
func (c *Controller) SetField(f proto.Field, text string) bool {
	if f >= proto.FieldCount {
		return false
	}
	if r := []rune(text); len(r) > maxFieldRunes {
		text = string(r[:maxFieldRunes])
	}
	c.st.Form[f] = text
	if f == c.st.Focus {
		c.st.Cursor = len([]rune(text))
	}
	return true
}

// SetShowCurve only affects drawing.
func (c *Controller) SetShowCurve(on bool) {
	c.st.ShowCurve = on
}

// SetAutoY switches between the automatic and the manual y range and
// recalculates.
func (c *Controller) SetAutoY(on bool) error {
	c.st.AutoY = on
	return c.Calculate()
}

// Calculate parses the form, compiles the expression and samples it. On
// success the selection is cleared.
func (c *Controller) Calculate() error {
	c.st.Calcs++
	p, err := c.st.Params()
	if err != nil {
		return c.fail(err)
	}
	e, err := c.compiler.Compile(c.st.Form[proto.FieldExpr])
	if err != nil {
		return c.fail(fmt.Errorf("formula error: %w", err))
	}
	set, err := sampler.Run(e, p)
	if err != nil {
		return c.fail(err)
	}

	c.st.Expr = e
	c.st.Set = set
	c.st.Selected = -1
	c.st.LastErr = nil
	c.st.Status = summary(set)
	return nil
}

func (c *Controller) fail(err error) error {
	c.st.LastErr = err
	c.st.Status = err.Error()
	return err
}

func summary(set *sampler.SampleSet) string {
	s := fmt.Sprintf("%d samples", set.Len())
	if n := len(set.Skipped); n > 0 {
		s += fmt.Sprintf(", %d skipped", n)
	}
	return s
}

// Select sets the selected sample. Indices outside the set clear it.
func (c *Controller) Select(i int) {
	if _, ok := c.st.Set.At(i); !ok {
		i = -1
	}
	c.st.Selected = i
}

// ClickResult reports what a click did.
type ClickResult uint8

const (
	ClickNone ClickResult = iota
	ClickPlot
	ClickTable
	ClickFocus
	ClickToggle
	ClickCalculate
)

// Click routes a display pixel to the plot, the table strip or the form.
// A click in the plot selects the nearest sample or clears the selection.
func (c *Controller) Click(px, py int) (ClickResult, error) {
	if c.view == nil {
		return ClickNone, nil
	}
	p := image.Pt(px, py)
	switch {
	case p.In(c.view.Plot.Bounds()):
		c.Select(c.view.Plot.Pick(c.st.Set, px, py))
		return ClickPlot, nil

	case p.In(c.view.Strip.Rect()):
		if i := c.view.Strip.HitTest(px, py, c.st.Set.Len()); i >= 0 {
			c.Select(i)
		}
		return ClickTable, nil

	case p.In(c.view.Form.Rect()):
		hit := c.view.Form.HitTest(px, py)
		switch hit.Kind {
		case HitField:
			c.Focus(hit.Field)
			return ClickFocus, nil
		case HitToggle:
			return ClickToggle, c.Toggle(hit.Toggle)
		case HitCalculate:
			return ClickCalculate, c.Calculate()
		}
	}
	return ClickNone, nil
}

// Toggle flips one of the checkboxes.
func (c *Controller) Toggle(t proto.Toggle) error {
	switch t {
	case proto.ToggleCurve:
		c.SetShowCurve(!c.st.ShowCurve)
	case proto.ToggleAutoY:
		return c.SetAutoY(!c.st.AutoY)
	}
	return nil
}

// Focus moves key input to field f with the cursor at the end.
func (c *Controller) Focus(f proto.Field) {
	if f >= proto.FieldCount {
		return
	}
	c.st.Focus = f
	c.st.Cursor = len([]rune(c.st.Form[f]))
}

// FocusNext moves focus by delta fields, wrapping around.
func (c *Controller) FocusNext(delta int) {
	n := int(proto.FieldCount)
	c.Focus(proto.Field(((int(c.st.Focus)+delta)%n + n) % n))
}

// MoveCursor moves the cursor within the focused field.
func (c *Controller) MoveCursor(delta int) {
	c.setCursor(c.st.Cursor + delta)
}

// CursorHome and CursorEnd jump to the ends of the focused field.
func (c *Controller) CursorHome() { c.setCursor(0) }
func (c *Controller) CursorEnd()  { c.setCursor(len(c.focused())) }

func (c *Controller) setCursor(pos int) {
	n := len(c.focused())
	if pos < 0 {
		pos = 0
	}
	if pos > n {
		pos = n
	}
	c.st.Cursor = pos
}

func (c *Controller) focused() []rune { return []rune(c.st.Form[c.st.Focus]) }

// InsertRune types r at the cursor. Control characters are ignored.
func (c *Controller) InsertRune(r rune) {
	if r < 0x20 || r == 0x7f {
		return
	}
	text := c.focused()
	if len(text) >= maxFieldRunes {
		return
	}
	cur := clampCursor(c.st.Cursor, len(text))
	text = append(text, 0)
	copy(text[cur+1:], text[cur:])
	text[cur] = r
	c.st.Form[c.st.Focus] = string(text)
	c.st.Cursor = cur + 1
}

// Backspace deletes the rune before the cursor.
func (c *Controller) Backspace() {
	text := c.focused()
	cur := clampCursor(c.st.Cursor, len(text))
	if cur == 0 {
		return
	}
	copy(text[cur-1:], text[cur:])
	c.st.Form[c.st.Focus] = string(text[:len(text)-1])
	c.st.Cursor = cur - 1
}

// DeleteForward deletes the rune under the cursor.
func (c *Controller) DeleteForward() {
	text := c.focused()
	cur := clampCursor(c.st.Cursor, len(text))
	if cur >= len(text) {
		return
	}
	copy(text[cur:], text[cur+1:])
	c.st.Form[c.st.Focus] = string(text[:len(text)-1])
	c.st.Cursor = cur
}

func clampCursor(cur, n int) int {
	if cur < 0 {
		return 0
	}
	if cur > n {
		return n
	}
	return cur
}
