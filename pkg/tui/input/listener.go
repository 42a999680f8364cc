// ABOUTME: Listener is the input execution: poll the device, decode keys, forward them on a channel.
// ABOUTME: Polls with a bounded wait and sleeps out the remainder so it never spins on a non-blocking source.

package input

import (
	"context"
	"io"
	"time"

	"github.com/mauromedda/tchart/pkg/tui/event"
	"github.com/mauromedda/tchart/pkg/tui/key"
)

const readBufSize = 256

// DefaultPollInterval is the longest the listener waits for input before
// re-checking for cancellation.
const DefaultPollInterval = 10 * time.Millisecond

// Source is an input device that can wait for readability with a timeout.
type Source interface {
	// Poll waits up to timeout for input and reports whether Read will
	// return data without blocking.
	Poll(timeout time.Duration) (bool, error)
	Read(p []byte) (int, error)
}

// Listener reads key presses from a Source.
type Listener struct {
	src      Source
	interval time.Duration
	dec      *Decoder
	now      func() time.Time
}

// NewListener returns a Listener polling src every interval. A non-positive
// interval selects DefaultPollInterval.
func NewListener(src Source, interval time.Duration) *Listener {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Listener{
		src:      src,
		interval: interval,
		dec:      NewDecoder(),
		now:      time.Now,
	}
}

// Run forwards key presses to out, in the order they were read, until ctx
// is cancelled (returns nil) or the device fails (returns *InputError).
// Run never closes out.
func (l *Listener) Run(ctx context.Context, out chan<- event.Event) error {
	buf := make([]byte, readBufSize)

	for ctx.Err() == nil {
		start := l.now()
		ready, err := l.src.Poll(l.interval)
		if err != nil {
			return &InputError{Op: "poll", Err: err}
		}

		if !ready {
			if !l.forward(ctx, out, l.dec.Expire(l.now())) {
				return nil
			}
			if rest := l.interval - l.now().Sub(start); rest > 0 {
				sleep(ctx, rest)
			}
			continue
		}

		n, err := l.src.Read(buf)
		if n > 0 {
			if !l.forward(ctx, out, l.dec.Feed(buf[:n], l.now())) {
				return nil
			}
		}
		if err == nil && n == 0 {
			err = io.EOF
		}
		if err != nil {
			l.forward(ctx, out, l.dec.Flush())
			return &InputError{Op: "read", Err: err}
		}
	}
	return nil
}

// forward sends each key press as an Input event. It returns false if ctx
// was cancelled while the consumer was not receiving.
func (l *Listener) forward(ctx context.Context, out chan<- event.Event, keys []key.Key) bool {
	for _, k := range keys {
		if k.Type == key.KeyMouse {
			continue
		}
		select {
		case out <- event.Input(k):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
