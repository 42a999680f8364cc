// ABOUTME: Session is the guarded handle to a terminal in raw mode on the alternate screen
// ABOUTME: Draw and Leave share one RW lock so teardown never interleaves with a frame

package terminal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mauromedda/tchart/pkg/tui"
)

const (
	altScreenOn  = "\x1b[?1049h"
	altScreenOff = "\x1b[?1049l"
	cursorHide   = "\x1b[?25l"
	cursorShow   = "\x1b[?25h"
	autowrapOff  = "\x1b[?7l"
	autowrapOn   = "\x1b[?7h"
	mouseOn      = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	mouseOff     = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
	pasteOn      = "\x1b[?2004h"
	pasteOff     = "\x1b[?2004l"
	resetSGR     = "\x1b[0m"
	clearAndHome = "\x1b[H\x1b[2J"
)

// ErrSessionClosed is returned by Draw once the session has been left.
var ErrSessionClosed = errors.New("terminal session closed")

// SessionError reports a failure entering or leaving the terminal session.
type SessionError struct {
	Op  string // "enter" or "leave"
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// Options selects the optional terminal modes enabled on Enter.
type Options struct {
	Mouse          bool
	BracketedPaste bool
}

// Session owns the terminal between Enter and Leave. Draw holds the write
// lock for one frame; Size and Closed take the read lock.
type Session struct {
	term Terminal
	opts Options

	mu     sync.RWMutex
	screen *tui.Screen
	closed bool

	leaveOnce sync.Once
	leaveErr  error
}

// Enter switches t to raw mode and the alternate screen. When any step
// after raw mode fails, raw mode is rolled back before returning.
func Enter(t Terminal, opts Options) (*Session, error) {
	if err := t.EnterRawMode(); err != nil {
		return nil, &SessionError{Op: "enter", Err: err}
	}

	w, h, err := t.Size()
	if err != nil {
		return nil, &SessionError{Op: "enter", Err: errors.Join(err, t.ExitRawMode())}
	}

	if _, err := t.Write([]byte(enterSequence(opts))); err != nil {
		return nil, &SessionError{Op: "enter", Err: errors.Join(err, t.ExitRawMode())}
	}

	s := &Session{
		term:   t,
		opts:   opts,
		screen: tui.NewScreen(t, w, h),
	}
	t.OnResize(s.resize)
	return s, nil
}

func enterSequence(opts Options) string {
	seq := altScreenOn + cursorHide + autowrapOff
	if opts.Mouse {
		seq += mouseOn
	}
	if opts.BracketedPaste {
		seq += pasteOn
	}
	return seq + clearAndHome
}

func leaveSequence(opts Options) string {
	var seq string
	if opts.Mouse {
		seq += mouseOff
	}
	if opts.BracketedPaste {
		seq += pasteOff
	}
	return seq + resetSGR + autowrapOn + cursorShow + altScreenOff
}

// Draw runs fn with exclusive access to the screen.
func (s *Session) Draw(fn func(*tui.Screen) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	return fn(s.screen)
}

// Size returns the current screen dimensions.
func (s *Session) Size() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen.Size()
}

// Closed reports whether Leave has run.
func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Leave restores the terminal. Only the first call does any work; later
// calls return its result. Raw mode is restored even when the escape
// writes fail.
func (s *Session) Leave() error {
	s.leaveOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.closed = true
		s.term.OnResize(nil)

		var errs []error
		if _, err := s.term.Write([]byte(leaveSequence(s.opts))); err != nil {
			errs = append(errs, err)
		}
		if err := s.term.ExitRawMode(); err != nil {
			errs = append(errs, err)
		}
		if err := errors.Join(errs...); err != nil {
			s.leaveErr = &SessionError{Op: "leave", Err: err}
		}
	})
	return s.leaveErr
}

func (s *Session) resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.screen.SetSize(width, height)
}
