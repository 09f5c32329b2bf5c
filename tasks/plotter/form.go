package plotter

import (
	"image"
	"image/color"

	"funcplot/plot/render"
	"funcplot/proto"
)

var (
	colorFormBG     = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	colorBoxBG      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorBoxBorder  = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}
	colorBoxFocus   = color.RGBA{R: 0x33, G: 0x66, B: 0xCC, A: 0xFF}
	colorBoxIdle    = color.RGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xFF}
	colorFormText   = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	colorFormMuted  = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}
	colorButtonBG   = color.RGBA{R: 0x33, G: 0x66, B: 0xCC, A: 0xFF}
	colorButtonText = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorStatusErr  = color.RGBA{R: 0xCC, G: 0x00, B: 0x00, A: 0xFF}
)

const (
	formRowHeight = 22
	formGap       = 8
	boxPad        = 3
	exprBoxWidth  = 180
	numBoxWidth   = 72
	checkSize     = 10
)

// HitKind says what a form click landed on.
type HitKind uint8

const (
	HitNone HitKind = iota
	HitField
	HitToggle
	HitCalculate
)

// FormHit is the result of FormView.HitTest.
type FormHit struct {
	Kind   HitKind
	Field  proto.Field
	Toggle proto.Toggle
}

// FormView lays out and draws the input form: the text fields on the first
// row, then the two toggles, the calculate button and the status line.
type FormView struct {
	d    *render.Display
	rect image.Rectangle

	labels  [proto.FieldCount]image.Point
	boxes   [proto.FieldCount]image.Rectangle
	toggles [2]image.Rectangle
	calc    image.Rectangle
	status  image.Point
}

func NewFormView(d *render.Display, rect image.Rectangle) *FormView {
	f := &FormView{d: d, rect: rect}
	f.layout()
	return f
}

func (f *FormView) Rect() image.Rectangle { return f.rect }

func (f *FormView) layout() {
	row0 := f.rect.Min.Y + 1
	x := f.rect.Min.X + formGap/2
	for i := proto.Field(0); i < proto.FieldCount; i++ {
		label := i.String()
		f.labels[i] = image.Pt(x, baseline(row0))
		x += int(render.TextWidth(label)) + 4
		w := numBoxWidth
		if i == proto.FieldExpr {
			w = exprBoxWidth
		}
		f.boxes[i] = image.Rect(x, row0+2, x+w, row0+formRowHeight-2)
		x += w + formGap
	}

	row1 := row0 + formRowHeight
	x = f.rect.Min.X + formGap/2
	for i, label := range toggleLabels {
		w := checkSize + 4 + int(render.TextWidth(label))
		f.toggles[i] = image.Rect(x, row1+2, x+w, row1+formRowHeight-2)
		x += w + 2*formGap
	}
	w := int(render.TextWidth(calcLabel)) + 2*formGap
	f.calc = image.Rect(x, row1+2, x+w, row1+formRowHeight-2)
	f.status = image.Pt(f.calc.Max.X+2*formGap, baseline(row1))
}

var toggleLabels = [2]string{
	proto.ToggleCurve: "curve (F1)",
	proto.ToggleAutoY: "auto y (F2)",
}

const calcLabel = "Calculate"

func baseline(rowTop int) int {
	return rowTop + (formRowHeight+render.FontAscent)/2 - 1
}

// HitTest maps a display pixel to a form control.
func (f *FormView) HitTest(x, y int) FormHit {
	p := image.Pt(x, y)
	if !p.In(f.rect) {
		return FormHit{}
	}
	for i, r := range f.boxes {
		if p.In(r) {
			return FormHit{Kind: HitField, Field: proto.Field(i)}
		}
	}
	for i, r := range f.toggles {
		if p.In(r) {
			return FormHit{Kind: HitToggle, Toggle: proto.Toggle(i)}
		}
	}
	if p.In(f.calc) {
		return FormHit{Kind: HitCalculate}
	}
	return FormHit{}
}

// FieldRect returns the text box of field i.
func (f *FormView) FieldRect(i proto.Field) image.Rectangle {
	if i >= proto.FieldCount {
		return image.Rectangle{}
	}
	return f.boxes[i]
}

// ToggleRect returns the clickable area of toggle t.
func (f *FormView) ToggleRect(t proto.Toggle) image.Rectangle {
	if int(t) >= len(f.toggles) {
		return image.Rectangle{}
	}
	return f.toggles[t]
}

// CalculateRect returns the calculate button.
func (f *FormView) CalculateRect() image.Rectangle { return f.calc }

// Draw repaints the form from st.
func (f *FormView) Draw(st *State) {
	fill(f.d, f.rect, colorFormBG)

	for i := proto.Field(0); i < proto.FieldCount; i++ {
		lp := f.labels[i]
		f.d.Text(int16(lp.X), int16(lp.Y), i.String(), colorFormText)

		box := f.boxes[i]
		bg := colorBoxBG
		fg := colorFormText
		if st.AutoY && (i == proto.FieldYMin || i == proto.FieldYMax) {
			bg, fg = colorBoxIdle, colorFormMuted
		}
		fill(f.d, box, bg)
		border := colorBoxBorder
		if i == st.Focus {
			border = colorBoxFocus
		}
		outline(f.d, box, border)
		f.drawFieldText(box, []rune(st.Form[i]), i == st.Focus, st.Cursor, fg)
	}

	on := [2]bool{proto.ToggleCurve: st.ShowCurve, proto.ToggleAutoY: st.AutoY}
	for i, r := range f.toggles {
		cy := r.Min.Y + (r.Dy()-checkSize)/2
		check := image.Rect(r.Min.X, cy, r.Min.X+checkSize, cy+checkSize)
		fill(f.d, check, colorBoxBG)
		outline(f.d, check, colorBoxBorder)
		if on[i] {
			fill(f.d, check.Inset(2), colorBoxFocus)
		}
		f.d.Text(int16(check.Max.X+4), int16(baseline(r.Min.Y-2)), toggleLabels[i], colorFormText)
	}

	fill(f.d, f.calc, colorButtonBG)
	f.d.Text(int16(f.calc.Min.X+formGap), int16(baseline(f.calc.Min.Y-2)), calcLabel, colorButtonText)

	if st.Status != "" {
		c := colorFormText
		if st.LastErr != nil {
			c = colorStatusErr
		}
		status := clipText(st.Status, f.rect.Max.X-f.status.X-formGap)
		f.d.Text(int16(f.status.X), int16(f.status.Y), status, c)
	}
}

// drawFieldText draws the part of text that fits the box, scrolled so the
// cursor stays visible when the field has focus.
func (f *FormView) drawFieldText(box image.Rectangle, text []rune, focused bool, cursor int, c color.RGBA) {
	maxW := box.Dx() - 2*boxPad
	if cursor > len(text) {
		cursor = len(text)
	}
	if cursor < 0 {
		cursor = 0
	}
	start := 0
	if focused {
		for start < cursor && int(render.TextWidth(string(text[start:cursor]))) > maxW-2 {
			start++
		}
	}
	end := len(text)
	for end > start && int(render.TextWidth(string(text[start:end]))) > maxW {
		end--
	}
	x := box.Min.X + boxPad
	y := box.Min.Y + (box.Dy()+render.FontAscent)/2 - 1
	f.d.Text(int16(x), int16(y), string(text[start:end]), c)

	if focused {
		cx := x + int(render.TextWidth(string(text[start:cursor])))
		f.d.Line(int16(cx), int16(box.Min.Y+3), int16(cx), int16(box.Max.Y-4), colorBoxFocus)
	}
}

func clipText(s string, maxW int) string {
	r := []rune(s)
	if int(render.TextWidth(s)) <= maxW {
		return s
	}
	for len(r) > 0 && int(render.TextWidth(string(r)+"...")) > maxW {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

func fill(d *render.Display, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	_ = d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), c)
}

func outline(d *render.Display, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	x0, y0 := int16(r.Min.X), int16(r.Min.Y)
	x1, y1 := int16(r.Max.X-1), int16(r.Max.Y-1)
	d.Line(x0, y0, x1, y0, c)
	d.Line(x0, y1, x1, y1, c)
	d.Line(x0, y0, x0, y1, c)
	d.Line(x1, y0, x1, y1, c)
}
