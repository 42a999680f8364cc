// ABOUTME: Lifecycle states, shutdown reasons, and error types shared by the dispatcher and render loop
// ABOUTME: Transitions are published on an eventbus so observers can follow the session lifecycle

package runner

import (
	"errors"
	"fmt"
)

// State is the dispatcher lifecycle state.
type State int32

const (
	StateRunning      State = iota // consuming events
	StateShuttingDown              // quit requested, teardown in progress
	StateTerminated                // teardown finished
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting-down"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Reason records why the dispatcher left StateRunning.
type Reason int

const (
	ReasonNone         Reason = iota
	ReasonQuitKey             // the quit binding was pressed
	ReasonDisconnected        // every producer is gone
	ReasonCancelled           // the run context was cancelled
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonQuitKey:
		return "quit-key"
	case ReasonDisconnected:
		return "disconnected"
	case ReasonCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Transition is published on every state change.
type Transition struct {
	From   State
	To     State
	Reason Reason
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s (%s)", t.From, t.To, t.Reason)
}

// ErrChannelClosed marks a shutdown caused by the event channel closing.
var ErrChannelClosed = errors.New("event channel closed")

// RenderError reports the frame on which the render loop stopped.
type RenderError struct {
	Frame int64
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render frame %d: %v", e.Frame, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
