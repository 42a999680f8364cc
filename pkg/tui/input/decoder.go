// ABOUTME: Decoder turns raw terminal bytes into key events without any goroutines of its own.
// ABOUTME: Buffers partial escape/UTF-8 input, resolves lone ESC after ~50ms, drops bracketed pastes.

package input

import (
	"bytes"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/tchart/pkg/tui/key"
)

const (
	escTimeout = 50 * time.Millisecond

	// maxCSILen bounds an unterminated CSI sequence; past it the ESC is
	// taken as a lone Escape and the rest re-parsed.
	maxCSILen = 32
)

var (
	bracketStart = []byte("\x1b[200~")
	bracketEnd   = []byte("\x1b[201~")
)

// Decoder accumulates input bytes and yields complete keys.
// It is not safe for concurrent use; the listener owns it.
type Decoder struct {
	buf     []byte
	since   time.Time // when the current incomplete prefix started waiting
	inPaste bool      // between a paste start marker and its end marker
}

// NewDecoder returns an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, readBufSize)}
}

// Feed appends data and returns every key that is now complete.
func (d *Decoder) Feed(data []byte, now time.Time) []key.Key {
	d.buf = append(d.buf, data...)
	before := len(d.buf)
	keys := d.drain(nil)
	d.track(before, now)
	return keys
}

// Expire resolves input that has been waiting longer than the escape
// timeout: a buffered ESC becomes Escape, any other stuck byte is dropped.
// An open paste never expires; its bytes are dropped until the end marker.
func (d *Decoder) Expire(now time.Time) []key.Key {
	if d.inPaste || len(d.buf) == 0 || now.Sub(d.since) < escTimeout {
		return nil
	}
	return d.Flush()
}

// Flush resolves everything buffered as if no more input will arrive.
func (d *Decoder) Flush() []key.Key {
	var keys []key.Key
	for len(d.buf) > 0 {
		if d.inPaste {
			// Unterminated paste: discard, never replay it as keys.
			d.buf = d.buf[:0]
			break
		}
		if d.buf[0] == 0x1b {
			keys = append(keys, key.Key{Type: key.KeyEscape})
		}
		d.buf = d.buf[1:]
		keys = d.drain(keys)
	}
	d.since = time.Time{}
	return keys
}

// Pending reports whether an incomplete sequence is buffered.
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0
}

// track restarts the wait clock whenever progress was made.
func (d *Decoder) track(before int, now time.Time) {
	switch {
	case len(d.buf) == 0:
		d.since = time.Time{}
	case len(d.buf) < before || d.since.IsZero():
		d.since = now
	}
}

// drain parses keys from the front of the buffer until it is empty or
// the remainder is an incomplete sequence.
func (d *Decoder) drain(keys []key.Key) []key.Key {
	for len(d.buf) > 0 {
		if d.inPaste {
			if !d.skipPaste() {
				break
			}
			continue
		}
		n, k, emit := d.next()
		if n == 0 {
			break
		}
		d.buf = d.buf[n:]
		if emit {
			keys = append(keys, k)
		}
	}
	if len(d.buf) == 0 {
		d.buf = d.buf[:0]
	}
	return keys
}

// skipPaste drops pasted bytes up to and including the end marker and
// reports whether the marker was found. A trailing partial marker is kept.
func (d *Decoder) skipPaste() bool {
	if i := bytes.Index(d.buf, bracketEnd); i >= 0 {
		d.buf = d.buf[i+len(bracketEnd):]
		d.inPaste = false
		return true
	}
	keep := min(len(d.buf), len(bracketEnd)-1)
	for ; keep > 0; keep-- {
		if bytes.HasPrefix(bracketEnd, d.buf[len(d.buf)-keep:]) {
			break
		}
	}
	d.buf = append(d.buf[:0], d.buf[len(d.buf)-keep:]...)
	return false
}

// next parses one token. n == 0 means more bytes are needed.
func (d *Decoder) next() (n int, k key.Key, emit bool) {
	b := d.buf

	if bytes.HasPrefix(b, bracketStart) {
		// Pasted text is not key input; drain skips it until the end marker.
		d.inPaste = true
		return len(bracketStart), key.Key{}, false
	}

	if b[0] == 0x1b {
		return d.nextEscape()
	}

	if !utf8.FullRune(b) {
		return 0, key.Key{}, false
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError {
		return 1, key.Key{Type: key.KeyUnknown}, true
	}
	return size, key.ParseKey(string(b[:size])), true
}

// nextEscape parses an ESC-prefixed token.
func (d *Decoder) nextEscape() (int, key.Key, bool) {
	b := d.buf
	if len(b) == 1 {
		return 0, key.Key{}, false
	}

	switch b[1] {
	case '[':
		for i := 2; i < len(b); i++ {
			if b[i] >= 0x40 && b[i] <= 0x7e {
				return i + 1, key.ParseKey(string(b[:i+1])), true
			}
			if i >= maxCSILen {
				return 1, key.Key{Type: key.KeyEscape}, true
			}
		}
		return 0, key.Key{}, false
	case 'O':
		if len(b) < 3 {
			return 0, key.Key{}, false
		}
		return 3, key.ParseKey(string(b[:3])), true
	case 0x1b:
		// Double ESC: the first one stands alone.
		return 1, key.Key{Type: key.KeyEscape}, true
	}

	if b[1] >= 0x20 && b[1] <= 0x7e {
		return 2, key.ParseKey(string(b[:2])), true
	}
	return 1, key.Key{Type: key.KeyEscape}, true
}
