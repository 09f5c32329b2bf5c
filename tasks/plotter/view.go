package plotter

import (
	"image"

	"funcplot/plot/render"
	"funcplot/plot/table"
)

const (
	// StripHeight is the height of the value table under the plot.
	StripHeight = 40
	// FormHeight is the height of the form under the table.
	FormHeight = 2 * formRowHeight
)

// FrameSize returns the display size needed for a plot canvas plus the table
// and form strips.
func FrameSize(c render.Canvas) (w, h int) {
	return c.Width, c.Height + StripHeight + FormHeight
}

// View is the screen layout: the plot canvas at the top, the value table
// strip and the form below it.
type View struct {
	Display *render.Display
	Plot    *render.Renderer
	Strip   *table.Strip
	Form    *FormView
}

func NewView(d *render.Display, c render.Canvas) *View {
	stripRect := image.Rect(0, c.Height, c.Width, c.Height+StripHeight)
	formRect := image.Rect(0, stripRect.Max.Y, c.Width, stripRect.Max.Y+FormHeight)
	return &View{
		Display: d,
		Plot:    render.New(d, c, image.Point{}),
		Strip:   table.NewStrip(d, stripRect),
		Form:    NewFormView(d, formRect),
	}
}

// Draw repaints every region from st and presents the frame.
func (v *View) Draw(st *State) error {
	v.Plot.Draw(render.Scene{
		Set:       st.Set,
		Expr:      st.Expr,
		Selected:  st.Selected,
		ShowCurve: st.ShowCurve,
	})
	v.Strip.Draw(table.Project(st.Set, st.Selected))
	v.Form.Draw(st)
	return v.Display.Display()
}
