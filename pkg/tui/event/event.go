// ABOUTME: Event is the tagged value passed from producers to the dispatcher over a channel
// ABOUTME: Variants: Input (a key press) and Tick (reserved for periodic non-input updates)

package event

import (
	"fmt"

	"github.com/mauromedda/tchart/pkg/tui/key"
)

// Kind tags the Event variant.
type Kind int

const (
	KindInput Kind = iota
	KindTick
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTick:
		return "tick"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is consumed exactly once by the dispatcher, in arrival order.
type Event struct {
	Kind Kind
	Key  key.Key // set for KindInput only
}

// Input wraps a key press.
func Input(k key.Key) Event {
	return Event{Kind: KindInput, Key: k}
}

// Tick returns a tick event. Nothing emits ticks yet; the dispatcher
// accepts them so a periodic producer can be added without changing it.
func Tick() Event {
	return Event{Kind: KindTick}
}

// String returns a debug representation, e.g. "input(q)" or "tick".
func (e Event) String() string {
	if e.Kind == KindInput {
		return "input(" + e.Key.String() + ")"
	}
	return e.Kind.String()
}
