// ABOUTME: RestoreOnPanic recovers from panics, leaves the session, and reports the panic as an error.
// ABOUTME: RecoverGoroutine turns a background goroutine panic into a returned error.

package terminal

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// PanicError carries a recovered panic value and the stack at the panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// RestoreOnPanic should be deferred at the top of the goroutine that owns
// the session, with errp pointing at its named error result. On panic it
// leaves the session and stores a *PanicError in *errp, so the caller can
// flush its logs before printing the stack and exiting.
func RestoreOnPanic(s *Session, errp *error) {
	r := recover()
	if r == nil {
		return
	}

	pe := &PanicError{Value: r, Stack: debug.Stack()}
	if s != nil {
		if err := s.Leave(); err != nil {
			*errp = errors.Join(pe, err)
			return
		}
	}
	*errp = pe
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the terminal is in raw mode. A panic is stored in *errp
// as a *PanicError; the owner of the session performs the teardown.
func RecoverGoroutine(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	*errp = &PanicError{Value: r, Stack: debug.Stack()}
}
