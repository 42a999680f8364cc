// ABOUTME: Frame is the drawing surface handed to render callbacks: one string per screen row
// ABOUTME: Frames are pooled via sync.Pool and recycled after each paint

package tui

import "sync"

var framePool = sync.Pool{
	New: func() any {
		return &Frame{lines: make([]string, 0, 64)}
	},
}

// AcquireFrame returns a blank frame of the given size from the pool.
func AcquireFrame(width, height int) *Frame {
	f := framePool.Get().(*Frame)
	f.reset(width, height)
	return f
}

// ReleaseFrame returns f to the pool.
func ReleaseFrame(f *Frame) {
	if f == nil {
		return
	}
	f.reset(0, 0)
	framePool.Put(f)
}

// Frame holds one full redraw. Rows may contain ANSI styling; the screen
// fits each row to the frame width when it is painted.
type Frame struct {
	width  int
	height int
	lines  []string
}

func (f *Frame) reset(width, height int) {
	f.width = width
	f.height = height
	if cap(f.lines) < height {
		f.lines = make([]string, height)
		return
	}
	f.lines = f.lines[:height]
	for i := range f.lines {
		f.lines[i] = ""
	}
}

// Width returns the frame width in columns.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in rows.
func (f *Frame) Height() int { return f.height }

// SetLine replaces row (0-based). Rows outside the frame are ignored.
func (f *Frame) SetLine(row int, s string) {
	if row < 0 || row >= f.height {
		return
	}
	f.lines[row] = s
}

// Line returns row, or "" outside the frame.
func (f *Frame) Line(row int) string {
	if row < 0 || row >= f.height {
		return ""
	}
	return f.lines[row]
}

// Lines returns the rows of the frame. The slice is owned by the frame.
func (f *Frame) Lines() []string {
	return f.lines
}
