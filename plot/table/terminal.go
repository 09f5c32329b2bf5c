package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	termHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	termCellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	termSelStyle    = termCellStyle.Copy().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9"))
	termBlockStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
)

// RenderTerminal lays the table out for a terminal of the given width,
// wrapping columns into as many bordered blocks as needed. The selected
// column is highlighted.
func RenderTerminal(t Table, width int) string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		termHeaderStyle.Render(HeaderX),
		termHeaderStyle.Render(HeaderY),
	)
	if t.Len() == 0 {
		return termBlockStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, header, termCellStyle.Render("(no samples)")))
	}

	cols := make([]string, t.Len())
	for i := range cols {
		st := termCellStyle
		if i == t.Selected {
			st = termSelStyle
		}
		w := lipgloss.Width(t.X[i])
		if yw := lipgloss.Width(t.Y[i]); yw > w {
			w = yw
		}
		st = st.Copy().Width(w + 2)
		cols[i] = lipgloss.JoinVertical(lipgloss.Right, st.Render(t.X[i]), st.Render(t.Y[i]))
	}

	// Border adds one column on each side.
	budget := width - 2 - lipgloss.Width(header)
	var blocks []string
	for start := 0; start < len(cols); {
		row := []string{header}
		used := 0
		end := start
		for end < len(cols) {
			w := lipgloss.Width(cols[end])
			if end > start && width > 0 && used+w > budget {
				break
			}
			row = append(row, cols[end])
			used += w
			end++
		}
		blocks = append(blocks, termBlockStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, row...)))
		start = end
	}
	return strings.Join(blocks, "\n")
}
