// ABOUTME: Tests for RestoreOnPanic and RecoverGoroutine panic recovery without os.Exit
// ABOUTME: Verifies panics are caught, the session is left, and PanicError is reported

package terminal

import (
	"errors"
	"testing"
)

func TestRecoverGoroutine_CatchesPanic(t *testing.T) {
	t.Parallel()

	var err error
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer RecoverGoroutine(&err)
		panic("test goroutine panic")
	}()

	<-done

	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *PanicError", err)
	}
	if pe.Value != "test goroutine panic" {
		t.Errorf("Value = %v", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Error("expected a stack trace")
	}
}

func TestRecoverGoroutine_NoPanic(t *testing.T) {
	t.Parallel()

	var err error
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer RecoverGoroutine(&err)
	}()

	<-done

	if err != nil {
		t.Errorf("err = %v, want nil when no panic occurs", err)
	}
}

func TestRecoverGoroutine_KeepsExistingError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("plain failure")
	run := func() (err error) {
		defer RecoverGoroutine(&err)
		return sentinel
	}

	if err := run(); !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}

func TestRestoreOnPanic_LeavesSession(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(20, 5)
	s, err := Enter(vt, Options{})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}

	run := func() (err error) {
		defer RestoreOnPanic(s, &err)
		panic("dispatcher blew up")
	}
	err = run()

	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "dispatcher blew up" {
		t.Fatalf("err = %v, want *PanicError", err)
	}
	if vt.IsRawMode() || vt.ExitCount() != 1 {
		t.Errorf("raw mode = %v, ExitCount() = %d; want restored once", vt.IsRawMode(), vt.ExitCount())
	}
	if !s.Closed() {
		t.Error("session still open after panic")
	}
}

func TestRestoreOnPanic_JoinsLeaveFailure(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(20, 5)
	s, err := Enter(vt, Options{})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}
	stuck := errors.New("tcsetattr failed")
	vt.FailExit(stuck)

	run := func() (err error) {
		defer RestoreOnPanic(s, &err)
		panic("boom")
	}
	err = run()

	var pe *PanicError
	if !errors.As(err, &pe) || !errors.Is(err, stuck) {
		t.Fatalf("err = %v, want *PanicError joined with %v", err, stuck)
	}
}

func TestRestoreOnPanic_NoPanic(t *testing.T) {
	t.Parallel()

	vt := NewVirtualTerminal(20, 5)
	s, err := Enter(vt, Options{})
	if err != nil {
		t.Fatalf("Enter() error: %v", err)
	}

	run := func() (err error) {
		defer RestoreOnPanic(s, &err)
		return nil
	}
	if err := run(); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if s.Closed() {
		t.Error("session left without a panic")
	}
}
