// ABOUTME: Render draws a Spec as a bordered line chart with labelled axes into a tui.Frame
// ABOUTME: Points outside the axis bounds are clipped; later datasets draw over earlier ones

package chart

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/tchart/pkg/tui"
	"github.com/mauromedda/tchart/pkg/tui/width"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"})
	boundStyle = axisStyle.Bold(true)
)

// Render paints s into f. Frames too small to hold a border are left blank.
func Render(f *tui.Frame, s Spec) error {
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return err
	}
	if f.Width() < 3 || f.Height() < 3 {
		return nil
	}

	c := newCanvas(f.Width(), f.Height())
	l := layout(c.w, c.h, s)
	l.border(c, s.Title)
	l.axes(c, s)
	for _, ds := range s.Datasets {
		l.plot(c, s, ds)
	}
	l.legend(c, s.Datasets)

	for y := range c.h {
		f.SetLine(y, c.line(y))
	}
	return nil
}

// chartLayout holds frame coordinates of the chart parts.
type chartLayout struct {
	right    int // last inner column
	bottom   int // last inner row
	axisX    int // column of the y axis line
	axisRow  int // row of the x axis line
	plotTop  int // first plot row
	plotCols int
	plotRows int
}

func layout(w, h int, s Spec) chartLayout {
	l := chartLayout{right: w - 2, bottom: h - 2}

	labelW := 0
	for _, lb := range s.Y.Labels {
		labelW = max(labelW, width.VisibleWidth(lb))
	}
	l.axisX = 1 + labelW

	l.axisRow = l.bottom
	if len(s.X.Labels) > 0 {
		l.axisRow--
	}
	if s.X.Title != "" {
		l.axisRow--
	}
	l.plotTop = 1
	if s.Y.Title != "" {
		l.plotTop++
	}

	l.plotCols = l.right - l.axisX
	l.plotRows = l.axisRow - l.plotTop
	return l
}

func (l chartLayout) border(c *canvas, title string) {
	c.set(0, 0, '┌', 0)
	c.set(c.w-1, 0, '┐', 0)
	c.set(0, c.h-1, '└', 0)
	c.set(c.w-1, c.h-1, '┘', 0)
	for x := 1; x < c.w-1; x++ {
		c.set(x, 0, '─', 0)
		c.set(x, c.h-1, '─', 0)
	}
	for y := 1; y < c.h-1; y++ {
		c.set(0, y, '│', 0)
		c.set(c.w-1, y, '│', 0)
	}
	if title != "" {
		c.text(1, 0, width.Truncate(title, c.w-2), c.style(titleStyle))
	}
}

func (l chartLayout) axes(c *canvas, s Spec) {
	if l.axisRow < 1 || l.axisX > l.right {
		return
	}
	axis := c.style(axisStyle)
	bold := c.style(boundStyle)

	if s.Y.Title != "" {
		c.text(1, 1, s.Y.Title, axis)
	}
	if s.X.Title != "" {
		tw := width.VisibleWidth(s.X.Title)
		c.text(max(1, l.right-tw+1), l.bottom, s.X.Title, axis)
	}

	for y := l.plotTop; y < l.axisRow; y++ {
		c.set(l.axisX, y, '│', axis)
	}
	c.set(l.axisX, l.axisRow, '└', axis)
	for x := l.axisX + 1; x <= l.right; x++ {
		c.set(x, l.axisRow, '─', axis)
	}

	n := len(s.Y.Labels)
	for i, lb := range s.Y.Labels {
		row := l.axisRow
		if n > 1 {
			row -= spread(i, n, l.axisRow-l.plotTop)
		}
		st := axis
		if n > 1 && (i == 0 || i == n-1) {
			st = bold
		}
		c.text(l.axisX-width.VisibleWidth(lb), row, lb, st)
	}

	n = len(s.X.Labels)
	row := l.axisRow + 1
	for i, lb := range s.X.Labels {
		lw := width.VisibleWidth(lb)
		x := l.axisX
		switch {
		case n == 1 || i == 0:
		case i == n-1:
			x = l.right - lw + 1
		default:
			x = l.axisX + spread(i, n, l.plotCols) - lw/2
		}
		c.text(max(1, x), row, lb, axis)
	}
}

func (l chartLayout) plot(c *canvas, s Spec, ds Dataset) {
	if l.plotCols < 1 || l.plotRows < 1 {
		return
	}
	marker := []rune(DefaultMarker)[0]
	if m := []rune(ds.Marker); len(m) > 0 {
		marker = m[0]
	}
	st := 0
	if ds.Color != "" {
		st = c.style(lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Color)))
	}

	for _, p := range ds.Points {
		fx, ok := scale(p[0], s.X.Bounds)
		if !ok {
			continue
		}
		fy, ok := scale(p[1], s.Y.Bounds)
		if !ok {
			continue
		}
		col := l.axisX + 1 + int(math.Round(fx*float64(l.plotCols-1)))
		row := l.axisRow - 1 - int(math.Round(fy*float64(l.plotRows-1)))
		c.set(col, row, marker, st)
	}
}

// legend lists named datasets in the top right of the plot area.
func (l chartLayout) legend(c *canvas, sets []Dataset) {
	row := l.plotTop
	for _, ds := range sets {
		if ds.Name == "" || row >= l.axisRow {
			continue
		}
		marker := DefaultMarker
		if ds.Marker != "" {
			marker = string([]rune(ds.Marker)[:1])
		}
		entry := marker + " " + ds.Name
		x := l.right - width.VisibleWidth(entry) + 1
		if x <= l.axisX {
			return
		}
		st := 0
		if ds.Color != "" {
			st = c.style(lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Color)))
		}
		c.text(x, row, entry, st)
		row++
	}
}

// scale maps v into [0, 1] within bounds; ok is false outside them.
func scale(v float64, bounds [2]float64) (float64, bool) {
	if math.IsNaN(v) || v < bounds[0] || v > bounds[1] {
		return 0, false
	}
	return (v - bounds[0]) / (bounds[1] - bounds[0]), true
}

// spread returns the offset of item i of n spaced evenly over span cells.
func spread(i, n, span int) int {
	return int(math.Round(float64(i) * float64(span) / float64(n-1)))
}
