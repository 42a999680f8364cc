// ABOUTME: Cell grid the chart is laid out on before it becomes styled frame rows
// ABOUTME: Runs of cells sharing a style are rendered together through lipgloss

package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// wideTail marks the second column of a double-width rune.
const wideTail rune = -1

type cell struct {
	r     rune
	style int // index into canvas.styles; 0 is unstyled
}

type canvas struct {
	w, h   int
	cells  []cell
	styles []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:      w,
		h:      h,
		cells:  make([]cell, w*h),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

// style registers st and returns its index.
func (c *canvas) style(st lipgloss.Style) int {
	c.styles = append(c.styles, st)
	return len(c.styles) - 1
}

// set writes one cell. Overwriting either half of a double-width rune
// blanks the other half so the row keeps its width.
func (c *canvas) set(x, y int, r rune, style int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	row := c.cells[y*c.w : (y+1)*c.w]
	old := row[x].r
	if old == wideTail && r != wideTail && x > 0 {
		row[x-1].r = ' '
	}
	if old != wideTail && x+1 < c.w && row[x+1].r == wideTail {
		row[x+1].r = ' '
	}
	row[x] = cell{r: r, style: style}
}

// text writes s starting at column x and returns the column after it.
// Runes that would cross the right edge are dropped.
func (c *canvas) text(x, y int, s string, style int) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.w {
			break
		}
		c.set(x, y, r, style)
		if w == 2 {
			c.set(x+1, y, wideTail, style)
		}
		x += w
	}
	return x
}

func (c *canvas) line(y int) string {
	var b, run strings.Builder
	cur := 0
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == 0 {
			b.WriteString(run.String())
		} else {
			b.WriteString(c.styles[cur].Render(run.String()))
		}
		run.Reset()
	}

	for _, cl := range c.cells[y*c.w : (y+1)*c.w] {
		if cl.r == wideTail {
			continue
		}
		if cl.style != cur {
			flush()
			cur = cl.style
		}
		run.WriteRune(cl.r)
	}
	flush()
	return b.String()
}
