// ABOUTME: Defines the Terminal interface for raw mode, size queries, input polling, and output.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

import (
	"errors"
	"time"
)

// ErrNotTerminal is returned by EnterRawMode when stdin is not a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Terminal abstracts low-level terminal operations: raw mode,
// size queries, output writing, input polling, and resize notifications.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
	OnResize(fn func(width, height int))

	// Poll waits at most timeout for input to become readable.
	Poll(timeout time.Duration) (ready bool, err error)
	// Read reads pending input bytes. It is only called after Poll
	// reported ready.
	Read(p []byte) (n int, err error)
}
