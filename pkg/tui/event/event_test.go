// ABOUTME: Tests for Event constructors and string forms

package event

import (
	"testing"

	"github.com/mauromedda/tchart/pkg/tui/key"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	in := Input(key.ParseKey("q"))
	if in.Kind != KindInput || in.Key.Rune != 'q' {
		t.Errorf("Input(q) = %+v", in)
	}
	if got := in.String(); got != "input(q)" {
		t.Errorf("String() = %q, want %q", got, "input(q)")
	}

	tick := Tick()
	if tick.Kind != KindTick {
		t.Errorf("Tick().Kind = %v, want KindTick", tick.Kind)
	}
	if got := tick.String(); got != "tick" {
		t.Errorf("String() = %q, want %q", got, "tick")
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("Kind(9).String() = %q", got)
	}
}
