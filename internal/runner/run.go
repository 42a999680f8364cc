// ABOUTME: Run wires the session guard, input listener, render loop, and dispatcher together
// ABOUTME: Rendering stops before the terminal is restored; the first failure is returned

package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/tchart/internal/eventbus"
	"github.com/mauromedda/tchart/internal/log"
	"github.com/mauromedda/tchart/pkg/tui/event"
	"github.com/mauromedda/tchart/pkg/tui/input"
	"github.com/mauromedda/tchart/pkg/tui/key"
	"github.com/mauromedda/tchart/pkg/tui/terminal"
)

const eventBuffer = 64

// listenerGrace bounds how long teardown waits for the listener. A source
// whose Read blocks cannot see cancellation until the next key press, and
// the terminal is restored without it.
const listenerGrace = 100 * time.Millisecond

// Deps bundles everything Run needs.
type Deps[S any] struct {
	Terminal      terminal.Terminal
	Options       terminal.Options
	Render        RenderFunc[S]
	Spec          S
	Quit          key.Binding
	FrameInterval time.Duration
	PollInterval  time.Duration

	// Transitions receives dispatcher state changes. Optional.
	Transitions *eventbus.Bus[Transition]
}

// Run enters the terminal session, runs until the quit key, input loss,
// a render failure, or ctx cancellation, and always restores the
// terminal before returning. A quit-key exit returns nil; a panic on the
// calling goroutine is returned as a *terminal.PanicError.
func Run[S any](ctx context.Context, d Deps[S]) (err error) {
	session, err := terminal.Enter(d.Terminal, d.Options)
	if err != nil {
		return err
	}
	defer session.Leave()
	defer terminal.RestoreOnPanic(session, &err)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	events := make(chan event.Event, eventBuffer)
	listener := input.NewListener(d.Terminal, d.PollInterval)
	listenDone := make(chan struct{})
	var listenErr error
	go func() {
		listenErr = func() (err error) {
			defer terminal.RecoverGoroutine(&err)
			return listener.Run(gctx, events)
		}()
		close(listenDone)
		close(events)
	}()

	loop := NewRenderLoop(session, d.Render, d.Spec, d.FrameInterval)
	g.Go(func() (err error) {
		defer terminal.RecoverGoroutine(&err)
		return loop.Run(gctx)
	})

	var bgErr error
	teardown := func() error {
		cancel()
		bgErr = g.Wait()
		select {
		case <-listenDone:
			if bgErr == nil {
				bgErr = listenErr
			}
		case <-time.After(listenerGrace):
			log.Debug("runner: input still blocked in read, restoring without it")
		}
		return session.Leave()
	}

	disp := NewDispatcher(d.Quit, teardown, d.Transitions)
	disp.Run(gctx, events)
	log.Debug("runner: stopped after %d frames (%s)", loop.Frames(), disp.Reason())

	if bgErr != nil {
		return bgErr
	}
	if err := disp.Err(); err != nil {
		return err
	}
	if cause := context.Cause(ctx); cause != nil {
		return fmt.Errorf("session interrupted: %w", cause)
	}
	if disp.Reason() == ReasonDisconnected {
		return ErrChannelClosed
	}
	return nil
}

// IsInterrupted reports whether err came from the parent context being
// cancelled rather than from a component failure.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
