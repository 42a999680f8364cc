// ABOUTME: Unix-specific input polling and SIGWINCH handling for ProcessTerminal.
// ABOUTME: Poll waits on stdin with poll(2); a goroutine turns SIGWINCH into resize callbacks.

//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Poll blocks until stdin is readable or timeout elapses. Hang-up and
// error conditions report ready so the following Read surfaces them.
func (t *ProcessTerminal) Poll(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(t.in.Fd()), Events: unix.POLLIN},
	}

	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("polling stdin: %w", err)
	}
	return n > 0 && fds[0].Revents != 0, nil
}

// startResizeListener sets up a SIGWINCH handler that calls the
// resize callback with the new terminal dimensions.
func (t *ProcessTerminal) startResizeListener() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-t.stop:
				return
			case <-sigCh:
			}

			fn := t.resizeHandler()
			if fn == nil {
				continue
			}
			w, h, err := t.Size()
			if err != nil {
				continue
			}
			fn(w, h)
		}
	}()
}
