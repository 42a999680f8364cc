// ABOUTME: Tests for Frame and Screen: pooling, full vs differential paints, error paths
// ABOUTME: Uses an in-memory writer to capture output for assertions

package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func paintLines(lines ...string) func(*Frame) error {
	return func(f *Frame) error {
		for i, l := range lines {
			f.SetLine(i, l)
		}
		return nil
	}
}

func TestFrame_Pool(t *testing.T) {
	t.Parallel()

	f := AcquireFrame(10, 3)
	f.SetLine(0, "a")
	f.SetLine(5, "ignored")
	f.SetLine(-1, "ignored")
	if f.Width() != 10 || f.Height() != 3 || len(f.Lines()) != 3 {
		t.Fatalf("frame = %dx%d with %d lines", f.Width(), f.Height(), len(f.Lines()))
	}
	if f.Line(0) != "a" || f.Line(7) != "" {
		t.Errorf("Line() = %q / %q", f.Line(0), f.Line(7))
	}
	ReleaseFrame(f)

	g := AcquireFrame(4, 2)
	defer ReleaseFrame(g)
	for i, l := range g.Lines() {
		if l != "" {
			t.Errorf("recycled frame line %d = %q, want empty", i, l)
		}
	}
}

func TestScreen_FirstPaintClears(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewScreen(&out, 20, 3)

	if err := s.Paint(paintLines("hello", "world")); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.HasPrefix(got, syncBegin+clearScreen) || !strings.HasSuffix(got, syncEnd) {
		t.Errorf("first paint not wrapped in sync + clear: %q", got)
	}
	for _, want := range []string{"\x1b[1;1Hhello", "\x1b[2;1Hworld", "\x1b[3;1H"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if s.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", s.Frames())
	}
}

func TestScreen_UnchangedFrameWritesNothing(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewScreen(&out, 20, 2)
	_ = s.Paint(paintLines("a", "b"))

	out.Reset()
	if err := s.Paint(paintLines("a", "b")); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("identical frame wrote %q", out.String())
	}
}

func TestScreen_OnlyChangedRows(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewScreen(&out, 20, 3)
	_ = s.Paint(paintLines("a", "b", "c"))

	out.Reset()
	_ = s.Paint(paintLines("a", "B", "c"))

	got := out.String()
	if !strings.Contains(got, "\x1b[2;1HB") {
		t.Errorf("changed row not written: %q", got)
	}
	if strings.Contains(got, "\x1b[1;1H") || strings.Contains(got, "\x1b[3;1H") {
		t.Errorf("unchanged rows rewritten: %q", got)
	}
	if strings.Contains(got, clearScreen) {
		t.Error("differential paint must not clear the screen")
	}
}

func TestScreen_RowsFitToWidth(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewScreen(&out, 4, 1)
	_ = s.Paint(paintLines("abcdefgh"))

	if strings.Contains(out.String(), "abcde") {
		t.Errorf("row not truncated to width: %q", out.String())
	}
	if !strings.Contains(out.String(), "abcd"+resetSGR) {
		t.Errorf("row not terminated with reset: %q", out.String())
	}
}

func TestScreen_SetSizeForcesFullRepaint(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewScreen(&out, 10, 2)
	_ = s.Paint(paintLines("a", "b"))

	s.SetSize(12, 2)
	out.Reset()
	_ = s.Paint(paintLines("a", "b"))

	if !strings.Contains(out.String(), clearScreen) {
		t.Errorf("resize did not trigger a full repaint: %q", out.String())
	}
	if w, h := s.Size(); w != 12 || h != 2 {
		t.Errorf("Size() = %dx%d, want 12x2", w, h)
	}
}

func TestScreen_DrawErrorSkipsWrite(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewScreen(&out, 10, 2)
	boom := errors.New("boom")

	if err := s.Paint(func(*Frame) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Paint error = %v, want %v", err, boom)
	}
	if out.Len() != 0 || s.Frames() != 0 {
		t.Errorf("failed draw wrote %q, frames=%d", out.String(), s.Frames())
	}
}

func TestScreen_WriteErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("EIO")
	s := NewScreen(failingWriter{err: boom}, 10, 2)

	if err := s.Paint(paintLines("x")); !errors.Is(err, boom) {
		t.Errorf("Paint error = %v, want wrapped %v", err, boom)
	}
}

func TestScreen_ZeroSizeIsNoop(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := NewScreen(&out, 0, 0)
	called := false
	err := s.Paint(func(*Frame) error { called = true; return nil })

	if err != nil || !called || out.Len() != 0 {
		t.Errorf("zero-size paint: err=%v called=%v wrote=%q", err, called, out.String())
	}
}
