// ABOUTME: Windows polling and resize fallbacks for ProcessTerminal.
// ABOUTME: Poll waits on the console input handle; resize is not reported.

//go:build windows

package terminal

import (
	"fmt"
	"time"

	"golang.org/x/sys/windows"
)

// Poll waits up to timeout for the console input handle to be signalled.
// Any pending console record signals it, so a following Read may still
// block on focus or mouse records.
func (t *ProcessTerminal) Poll(timeout time.Duration) (bool, error) {
	ms := uint32(timeout / time.Millisecond)
	ev, err := windows.WaitForSingleObject(windows.Handle(t.in.Fd()), ms)
	switch {
	case err != nil:
		return false, fmt.Errorf("waiting for console input: %w", err)
	case ev == windows.WAIT_OBJECT_0:
		return true, nil
	case ev == uint32(windows.WAIT_TIMEOUT):
		return false, nil
	}
	return false, fmt.Errorf("waiting for console input: unexpected result %#x", ev)
}

// startResizeListener is a no-op on Windows.
func (t *ProcessTerminal) startResizeListener() {}
