// ABOUTME: Tests for chart rendering: border and title, axis labels, point placement, clipping
// ABOUTME: Output is compared after stripping ANSI styling

package chart

import (
	"errors"
	"strings"
	"testing"

	"github.com/mauromedda/tchart/pkg/tui"
	"github.com/mauromedda/tchart/pkg/tui/width"
)

func renderPlain(t *testing.T, w, h int, s Spec) []string {
	t.Helper()
	f := tui.AcquireFrame(w, h)
	defer tui.ReleaseFrame(f)

	if err := Render(f, s); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	lines := make([]string, h)
	for i, l := range f.Lines() {
		lines[i] = width.StripANSI(l)
	}
	return lines
}

func countMarkers(lines []string, marker string) int {
	n := 0
	for _, l := range lines {
		n += strings.Count(l, marker)
	}
	return n
}

func runeAt(line string, col int) rune {
	rs := []rune(line)
	if col < 0 || col >= len(rs) {
		return 0
	}
	return rs[col]
}

func TestRender_DefaultSpec(t *testing.T) {
	t.Parallel()

	lines := renderPlain(t, 40, 12, DefaultSpec())

	if !strings.HasPrefix(lines[0], "┌Chart 1─") || !strings.HasSuffix(lines[0], "┐") {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.HasPrefix(lines[11], "└") || !strings.HasSuffix(lines[11], "┘") {
		t.Errorf("bottom border = %q", lines[11])
	}
	all := strings.Join(lines, "\n")
	for _, want := range []string{"X Axis", "Y Axis", "foo", "bar", "baz", "-20", "20"} {
		if !strings.Contains(all, want) {
			t.Errorf("chart missing %q:\n%s", want, all)
		}
	}
	if got := countMarkers(lines, DefaultMarker); got != 3 {
		t.Errorf("drew %d points, want 3:\n%s", got, all)
	}
	for i, l := range lines {
		if w := width.VisibleWidth(l); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}
}

func TestRender_PointPlacement(t *testing.T) {
	t.Parallel()

	s := Spec{
		X: Axis{Bounds: [2]float64{0, 1}},
		Y: Axis{Bounds: [2]float64{0, 1}},
		Datasets: []Dataset{{
			Marker: "x",
			Points: [][2]float64{{0, 0}, {1, 1}},
		}},
	}
	lines := renderPlain(t, 20, 10, s)

	// Plot area spans columns 2..18 and rows 1..7; the x axis is row 8.
	if r := runeAt(lines[7], 2); r != 'x' {
		t.Errorf("min point at (2,7) = %q\n%s", r, strings.Join(lines, "\n"))
	}
	if r := runeAt(lines[1], 18); r != 'x' {
		t.Errorf("max point at (18,1) = %q\n%s", r, strings.Join(lines, "\n"))
	}
	if r := runeAt(lines[8], 1); r != '└' {
		t.Errorf("axis corner = %q", r)
	}
}

func TestRender_ClipsOutOfBounds(t *testing.T) {
	t.Parallel()

	s := DefaultSpec()
	s.Datasets = []Dataset{{Points: [][2]float64{{5, 0}, {0, 50}, {1, 0}}}}
	lines := renderPlain(t, 40, 12, s)

	if got := countMarkers(lines, DefaultMarker); got != 1 {
		t.Errorf("drew %d points, want only the in-range one", got)
	}
}

func TestRender_InvertedBoundsMatchOrdered(t *testing.T) {
	t.Parallel()

	ordered := DefaultSpec()
	inverted := DefaultSpec()
	inverted.X.Bounds = [2]float64{2, 0}
	inverted.Y.Bounds = [2]float64{20, -20}

	a := renderPlain(t, 40, 12, ordered)
	b := renderPlain(t, 40, 12, inverted)
	if strings.Join(a, "\n") != strings.Join(b, "\n") {
		t.Error("inverted bounds rendered differently from ordered bounds")
	}
}

func TestRender_EmptyRange(t *testing.T) {
	t.Parallel()

	s := DefaultSpec()
	s.Y.Bounds = [2]float64{3, 3}
	f := tui.AcquireFrame(40, 12)
	defer tui.ReleaseFrame(f)

	if err := Render(f, s); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("Render() = %v, want ErrEmptyRange", err)
	}
}

func TestRender_TinyFrame(t *testing.T) {
	t.Parallel()

	for _, size := range [][2]int{{0, 0}, {2, 10}, {10, 2}} {
		lines := renderPlain(t, size[0], size[1], DefaultSpec())
		for _, l := range lines {
			if l != "" {
				t.Errorf("%dx%d frame drew %q", size[0], size[1], l)
			}
		}
	}
}

func TestRender_Legend(t *testing.T) {
	t.Parallel()

	s := DefaultSpec()
	s.Datasets[0].Name = "latency"
	lines := renderPlain(t, 40, 12, s)

	if !strings.Contains(lines[2], "• latency│") {
		t.Errorf("legend row = %q", lines[2])
	}
}

func TestRender_LongTitleTruncated(t *testing.T) {
	t.Parallel()

	s := DefaultSpec()
	s.Title = strings.Repeat("Throughput ", 10)
	lines := renderPlain(t, 30, 8, s)

	if w := width.VisibleWidth(lines[0]); w != 30 {
		t.Errorf("title row width = %d, want 30", w)
	}
	if !strings.HasSuffix(lines[0], "┐") {
		t.Errorf("title overwrote the corner: %q", lines[0])
	}
}

func TestSpec_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultSpec().Validate(); err != nil {
		t.Errorf("DefaultSpec().Validate() = %v", err)
	}
	s := DefaultSpec()
	s.X.Bounds = [2]float64{1, 1}
	if err := s.Validate(); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("Validate() = %v, want ErrEmptyRange", err)
	}
}
