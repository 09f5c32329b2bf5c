package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"funcplot/hal"
	"funcplot/kernel"
	"funcplot/plot/render"
)

var (
	colorPanicBG = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorPanicFG = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// panicHandler logs a task panic with its stack and paints it over the
// framebuffer. The kernel keeps stepping the remaining tasks.
func panicHandler(h hal.HAL, names map[kernel.TaskID]string) func(kernel.PanicInfo) {
	return func(info kernel.PanicInfo) {
		name := names[info.TaskID]
		if name == "" {
			name = fmt.Sprintf("#%d", info.TaskID)
		}
		lines := []string{
			"funcplot panic:",
			"task: " + name,
			fmt.Sprintf("panic: %v", info.Value),
		}
		if len(info.Stack) > 0 {
			lines = append(lines, "stack:")
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line != "" {
					lines = append(lines, line)
				}
			}
		} else {
			lines = append(lines, "stack: unavailable")
		}

		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLine(hal.LogError, line)
			}
		}
		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				drawPanic(render.NewDisplay(fb), lines)
			}
		}
	}
}

func drawPanic(d *render.Display, lines []string) {
	w, h := d.Size()
	_ = d.FillRectangle(0, 0, w, h, colorPanicBG)

	charW := render.TextWidth("0")
	if charW <= 0 {
		charW = 1
	}
	cols := int(w / charW)
	if cols <= 0 {
		cols = 1
	}

	y := int16(render.FontAscent)
	for _, line := range lines {
		for len(line) > 0 {
			if y > h {
				_ = d.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			d.Text(0, y, chunk, colorPanicFG)
			y += render.FontHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = d.Display()
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
