// ABOUTME: Dispatcher consumes events in arrival order and drives Running -> ShuttingDown -> Terminated
// ABOUTME: The quit key, a closed channel, or cancellation all converge on one teardown call

package runner

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mauromedda/tchart/internal/eventbus"
	"github.com/mauromedda/tchart/internal/log"
	"github.com/mauromedda/tchart/pkg/tui/event"
	"github.com/mauromedda/tchart/pkg/tui/key"
)

// ctrlC always quits: raw mode turns it into a plain key press.
var ctrlC = key.MustParseBinding("ctrl+c")

// Dispatcher is the sole consumer of the event channel.
type Dispatcher struct {
	quit     []key.Binding
	teardown func() error
	bus      *eventbus.Bus[Transition]

	state  atomic.Int32 // stores State
	reason atomic.Int32 // stores Reason

	once        sync.Once
	teardownErr error
}

// NewDispatcher returns a Dispatcher that runs teardown once when it shuts
// down. bus may be nil.
func NewDispatcher(quit key.Binding, teardown func() error, bus *eventbus.Bus[Transition]) *Dispatcher {
	if teardown == nil {
		teardown = func() error { return nil }
	}
	return &Dispatcher{
		quit:     []key.Binding{quit, ctrlC},
		teardown: teardown,
		bus:      bus,
	}
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Reason returns why the dispatcher shut down, or ReasonNone while running.
func (d *Dispatcher) Reason() Reason {
	return Reason(d.reason.Load())
}

// Err returns the teardown error once the dispatcher has terminated.
func (d *Dispatcher) Err() error {
	if d.State() != StateTerminated {
		return nil
	}
	return d.teardownErr
}

// Run consumes events until the quit key arrives, the channel is closed,
// or ctx is done, then shuts down and returns StateTerminated.
func (d *Dispatcher) Run(ctx context.Context, events <-chan event.Event) State {
	for d.State() == StateRunning {
		select {
		case <-ctx.Done():
			d.Shutdown(ReasonCancelled)
		case ev, ok := <-events:
			if !ok {
				d.Shutdown(ReasonDisconnected)
				continue
			}
			d.handle(ev)
		}
	}
	return d.State()
}

func (d *Dispatcher) handle(ev event.Event) {
	switch ev.Kind {
	case event.KindInput:
		for _, b := range d.quit {
			if b.Matches(ev.Key) {
				d.Shutdown(ReasonQuitKey)
				return
			}
		}
		log.Debug("dispatcher: ignoring %s", ev)
	case event.KindTick:
	}
}

// Shutdown moves to ShuttingDown, runs teardown, and moves to Terminated.
// Only the first call has any effect.
func (d *Dispatcher) Shutdown(reason Reason) {
	d.once.Do(func() {
		d.reason.Store(int32(reason))
		d.transition(StateRunning, StateShuttingDown, reason)
		d.teardownErr = d.teardown()
		d.transition(StateShuttingDown, StateTerminated, reason)
	})
}

func (d *Dispatcher) transition(from, to State, reason Reason) {
	d.state.Store(int32(to))
	t := Transition{From: from, To: to, Reason: reason}
	log.Debug("dispatcher: %s", t)
	if d.bus != nil {
		d.bus.Publish(t)
	}
}
