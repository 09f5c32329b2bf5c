package table

import (
	"image"
	"image/color"

	"funcplot/plot/render"
)

var (
	colorStripBG    = color.RGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xFF}
	colorHeaderBG   = color.RGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
	colorGridLine   = color.RGBA{R: 0xBB, G: 0xBB, B: 0xBB, A: 0xFF}
	colorText       = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	colorSelectedBG = color.RGBA{R: 0xFF, G: 0xD8, B: 0xD8, A: 0xFF}
	colorMore       = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
)

const (
	headerWidth = 64
	cellWidth   = 64
	cellPad     = 4
)

// Strip draws a Table as a horizontally scrolling two-row grid inside a
// fixed rectangle of the display. It remembers the first visible column.
type Strip struct {
	d      *render.Display
	rect   image.Rectangle
	offset int
}

func NewStrip(d *render.Display, rect image.Rectangle) *Strip {
	return &Strip{d: d, rect: rect}
}

// Rect returns the strip area in display coordinates.
func (s *Strip) Rect() image.Rectangle { return s.rect }

// Offset returns the index of the first visible column.
func (s *Strip) Offset() int { return s.offset }

// Visible returns how many value columns fit.
func (s *Strip) Visible() int {
	n := (s.rect.Dx() - headerWidth) / cellWidth
	if n < 1 {
		return 1
	}
	return n
}

// Scroll moves the window by delta columns, clamped to the table.
func (s *Strip) Scroll(delta, columns int) {
	s.offset = clampOffset(s.offset+delta, columns, s.Visible())
}

// Window returns the first visible column for a table with the given size
// and selection, moving as little as possible to keep the selection shown.
func (s *Strip) Window(columns, selected int) int {
	vis := s.Visible()
	if selected >= 0 && selected < columns {
		if selected < s.offset {
			s.offset = selected
		} else if selected >= s.offset+vis {
			s.offset = selected - vis + 1
		}
	}
	s.offset = clampOffset(s.offset, columns, vis)
	return s.offset
}

func clampOffset(off, columns, vis int) int {
	max := columns - vis
	if max < 0 {
		max = 0
	}
	if off > max {
		off = max
	}
	if off < 0 {
		off = 0
	}
	return off
}

// Draw repaints the strip from t.
func (s *Strip) Draw(t Table) {
	r := s.rect
	_ = s.d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), colorStripBG)

	rowH := r.Dy() / 2
	if rowH < render.FontHeight {
		return
	}
	_ = s.d.FillRectangle(int16(r.Min.X), int16(r.Min.Y), headerWidth, int16(r.Dy()), colorHeaderBG)
	s.cellText(r.Min.X, r.Min.Y, rowH, HeaderX, colorText)
	s.cellText(r.Min.X, r.Min.Y+rowH, rowH, HeaderY, colorText)

	off := s.Window(t.Len(), t.Selected)
	vis := s.Visible()
	for col := 0; col < vis && off+col < t.Len(); col++ {
		i := off + col
		x := r.Min.X + headerWidth + col*cellWidth
		if i == t.Selected {
			_ = s.d.FillRectangle(int16(x), int16(r.Min.Y), cellWidth, int16(r.Dy()), colorSelectedBG)
		}
		s.cellText(x, r.Min.Y, rowH, t.X[i], colorText)
		s.cellText(x, r.Min.Y+rowH, rowH, t.Y[i], colorText)
		s.d.Line(int16(x), int16(r.Min.Y), int16(x), int16(r.Max.Y-1), colorGridLine)
	}
	mid := int16(r.Min.Y + rowH)
	s.d.Line(int16(r.Min.X), mid, int16(r.Max.X-1), mid, colorGridLine)

	if off > 0 {
		s.d.Text(int16(r.Min.X+headerWidth-8), int16(r.Max.Y-2), "<", colorMore)
	}
	if off+vis < t.Len() {
		s.d.Text(int16(r.Max.X-8), int16(r.Max.Y-2), ">", colorMore)
	}
}

func (s *Strip) cellText(x, y, rowH int, text string, c color.RGBA) {
	maxW := cellWidth - 2*cellPad
	for len(text) > 1 && int(render.TextWidth(text)) > maxW {
		text = text[:len(text)-1]
	}
	baseline := y + (rowH+render.FontAscent)/2
	s.d.Text(int16(x+cellPad), int16(baseline), text, c)
}

// HitTest maps a display pixel to a value column of a table with the given
// size. It returns -1 for the header, empty cells and points outside the
// strip.
func (s *Strip) HitTest(x, y, columns int) int {
	if !image.Pt(x, y).In(s.rect) {
		return -1
	}
	rel := x - s.rect.Min.X - headerWidth
	if rel < 0 {
		return -1
	}
	i := s.offset + rel/cellWidth
	if rel/cellWidth >= s.Visible() || i >= columns {
		return -1
	}
	return i
}
