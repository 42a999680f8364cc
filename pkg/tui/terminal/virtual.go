// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Captures output, tracks raw-mode transitions, and replays scripted input and failures.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// VirtualTerminal is a fake Terminal for unit tests.
// It records written output and tracks raw-mode transitions.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	width      int
	height     int
	rawMode    bool
	resizeFn   func(width, height int)
	enterCount int
	exitCount  int
	pollCount  int

	input   []byte
	readErr error
	eof     bool
	notify  chan struct{}

	enterErr error
	exitErr  error
	writeErr error
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:  width,
		height: height,
		notify: make(chan struct{}, 1),
	}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.enterErr != nil {
		return v.enterErr
	}
	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = false
	v.exitCount++
	return v.exitErr
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// Write appends data to the internal buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.writeErr != nil {
		return 0, v.writeErr
	}
	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// OnResize stores the resize callback.
func (v *VirtualTerminal) OnResize(fn func(width, height int)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resizeFn = fn
}

// Poll waits up to timeout for scripted input, a scripted read error,
// or end of input.
func (v *VirtualTerminal) Poll(timeout time.Duration) (bool, error) {
	v.mu.Lock()
	v.pollCount++
	ready := v.readableLocked()
	v.mu.Unlock()
	if ready {
		return true, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-v.notify:
	case <-timer.C:
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.readableLocked(), nil
}

// Read drains scripted input. Once input is exhausted it returns the
// scripted read error or io.EOF.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.input) > 0 {
		n := copy(p, v.input)
		v.input = v.input[n:]
		return n, nil
	}
	if v.readErr != nil {
		return 0, v.readErr
	}
	if v.eof {
		return 0, io.EOF
	}
	return 0, nil
}

func (v *VirtualTerminal) readableLocked() bool {
	return len(v.input) > 0 || v.readErr != nil || v.eof
}

func (v *VirtualTerminal) wake() {
	select {
	case v.notify <- struct{}{}:
	default:
	}
}

// --- Test helpers (not part of Terminal interface) ---

// Feed queues input bytes for Read.
func (v *VirtualTerminal) Feed(data string) {
	v.mu.Lock()
	v.input = append(v.input, data...)
	v.mu.Unlock()
	v.wake()
}

// FailRead makes Read return err once queued input is drained.
func (v *VirtualTerminal) FailRead(err error) {
	v.mu.Lock()
	v.readErr = err
	v.mu.Unlock()
	v.wake()
}

// CloseInput makes Read return io.EOF once queued input is drained.
func (v *VirtualTerminal) CloseInput() {
	v.mu.Lock()
	v.eof = true
	v.mu.Unlock()
	v.wake()
}

// FailEnter makes EnterRawMode fail with err.
func (v *VirtualTerminal) FailEnter(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enterErr = err
}

// FailExit makes ExitRawMode report err. The mode is still left.
func (v *VirtualTerminal) FailExit(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.exitErr = err
}

// FailWrites makes every later Write fail with err. A nil err clears it.
func (v *VirtualTerminal) FailWrites(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.writeErr = err
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// EnterCount returns how many times EnterRawMode succeeded.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// PollCount returns how many times Poll was called.
func (v *VirtualTerminal) PollCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pollCount
}

// SetSize updates the terminal dimensions and, if a resize callback
// is registered, invokes it with the new size.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	v.width = width
	v.height = height
	fn := v.resizeFn
	v.mu.Unlock()

	if fn != nil {
		fn(width, height)
	}
}
