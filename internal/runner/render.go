// ABOUTME: RenderLoop redraws the visualization on a fixed interval through the session's draw lock
// ABOUTME: A callback error, a callback panic, or a closed session ends the loop with a RenderError

package runner

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mauromedda/tchart/pkg/tui"
	"github.com/mauromedda/tchart/pkg/tui/terminal"
)

// DefaultFrameInterval is roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// RenderFunc paints one frame of spec.
type RenderFunc[S any] func(f *tui.Frame, spec S) error

// Drawer grants exclusive access to the screen for one frame.
type Drawer interface {
	Draw(fn func(*tui.Screen) error) error
}

// RenderLoop is the render execution.
type RenderLoop[S any] struct {
	drawer   Drawer
	render   RenderFunc[S]
	spec     S
	interval time.Duration
	frames   atomic.Int64
}

// NewRenderLoop returns a loop drawing spec with render every interval.
// A non-positive interval selects DefaultFrameInterval.
func NewRenderLoop[S any](d Drawer, render RenderFunc[S], spec S, interval time.Duration) *RenderLoop[S] {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &RenderLoop[S]{
		drawer:   d,
		render:   render,
		spec:     spec,
		interval: interval,
	}
}

// Frames returns the number of frames drawn so far.
func (r *RenderLoop[S]) Frames() int64 {
	return r.frames.Load()
}

// Run draws a frame immediately and then once per interval until ctx is
// done (returns nil) or a frame fails (returns *RenderError).
func (r *RenderLoop[S]) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.frame(); err != nil {
			return &RenderError{Frame: r.frames.Load() + 1, Err: err}
		}
		r.frames.Add(1)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (r *RenderLoop[S]) frame() (err error) {
	defer terminal.RecoverGoroutine(&err)

	return r.drawer.Draw(func(sc *tui.Screen) error {
		return sc.Paint(func(f *tui.Frame) error {
			return r.render(f, r.spec)
		})
	})
}
