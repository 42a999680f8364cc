// ABOUTME: Screen paints frames onto the alternate screen, rewriting only rows that changed
// ABOUTME: Each paint is wrapped in CSI 2026 synchronized output; callers serialize access

package tui

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mauromedda/tchart/pkg/tui/internal/pool"
	"github.com/mauromedda/tchart/pkg/tui/width"
)

const (
	syncBegin   = "\x1b[?2026h"
	syncEnd     = "\x1b[?2026l"
	clearScreen = "\x1b[H\x1b[2J"
	resetSGR    = "\x1b[0m"
)

// Writer is the minimal interface for terminal output.
type Writer interface {
	Write(p []byte) (n int, err error)
}

// Screen keeps the previously painted frame so each paint can be diffed
// against it. Screen is not safe for concurrent use.
type Screen struct {
	writer Writer
	width  int
	height int
	prev   []string
	full   bool // repaint every row on the next Paint
	frames int64
}

// NewScreen returns a Screen of the given size. The first Paint clears the
// display and draws every row.
func NewScreen(w Writer, width, height int) *Screen {
	return &Screen{
		writer: w,
		width:  width,
		height: height,
		full:   true,
	}
}

// Size returns the current dimensions.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// SetSize changes the dimensions and forces a full repaint.
func (s *Screen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.prev = nil
	s.full = true
}

// Invalidate forces the next Paint to redraw everything.
func (s *Screen) Invalidate() {
	s.full = true
}

// Frames returns the number of frames painted successfully.
func (s *Screen) Frames() int64 {
	return s.frames
}

// Paint hands a blank frame to draw and writes the rows that differ from
// the previous frame. Errors from draw are returned without writing.
func (s *Screen) Paint(draw func(*Frame) error) error {
	f := AcquireFrame(s.width, s.height)
	defer ReleaseFrame(f)

	if err := draw(f); err != nil {
		return err
	}
	if s.width <= 0 || s.height <= 0 {
		return nil
	}

	lines := f.Lines()
	for i, line := range lines {
		lines[i] = width.Fit(line, s.width) + resetSGR
	}

	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)
	buf.WriteString(syncBegin)
	if s.diff(buf, lines) {
		buf.WriteString(syncEnd)
		if _, err := s.writer.Write(buf.Bytes()); err != nil {
			s.full = true
			return fmt.Errorf("writing frame: %w", err)
		}
	}

	if cap(s.prev) >= len(lines) {
		s.prev = s.prev[:len(lines)]
	} else {
		s.prev = make([]string, len(lines))
	}
	copy(s.prev, lines)
	s.full = false
	s.frames++
	return nil
}

// diff appends the escape stream that turns the previous frame into lines
// and reports whether anything was appended.
func (s *Screen) diff(b *bytes.Buffer, lines []string) bool {
	var num [20]byte
	start := b.Len()

	if s.full {
		b.WriteString(clearScreen)
	}
	for row, line := range lines {
		if !s.full && row < len(s.prev) && s.prev[row] == line {
			continue
		}
		b.WriteString("\x1b[")
		b.Write(strconv.AppendInt(num[:0], int64(row+1), 10))
		b.WriteString(";1H")
		b.WriteString(line)
	}
	return b.Len() > start
}
