// ABOUTME: Defines the Key type and ParseKey for raw terminal keyboard input.
// ABOUTME: Handles printable runes, Ctrl+letter bytes, and ESC-prefixed sequences via legacy tables.

package key

import (
	"strings"
	"unicode/utf8"
)

// Key is one parsed input event. Only the fields relevant to the Type are set.
type Key struct {
	Type  Type
	Rune  rune // KeyRune, and the letter for Ctrl combinations
	Alt   bool
	Ctrl  bool
	Shift bool
}

// Type enumerates the kinds of key events the listener can produce.
type Type int

const (
	KeyRune      Type = iota // Printable character, or Ctrl+letter with Ctrl set
	KeyEnter                 // Enter / Return
	KeyTab                   // Tab
	KeyBackTab               // Shift+Tab
	KeyBackspace             // Backspace / DEL (0x7F)
	KeyDelete                // Delete key
	KeyUp                    // Arrow up
	KeyDown                  // Arrow down
	KeyLeft                  // Arrow left
	KeyRight                 // Arrow right
	KeyHome                  // Home
	KeyEnd                   // End
	KeyPageUp                // Page Up
	KeyPageDown              // Page Down
	KeyEscape                // Escape
	KeyMouse                 // Mouse report; never forwarded as a key press
	KeyUnknown               // Unrecognized input
)

// ParseKey parses one complete input token into a Key.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}
	if len(data) == 1 {
		return parseSingleByte(data[0])
	}
	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, _ := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d || b == 0x0a:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f || b == 0x08:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	case b >= 0x01 && b <= 0x1a:
		// Ctrl+A .. Ctrl+Z arrive as 0x01..0x1A in raw mode.
		return Key{Type: KeyRune, Rune: rune('a' + b - 1), Ctrl: true}
	}
	return Key{Type: KeyUnknown}
}

func parseEscapeSequence(data string) Key {
	if strings.HasPrefix(data, sgrMousePrefix) {
		if _, ok := mouseSequenceLen(data); ok {
			return Key{Type: KeyMouse}
		}
		return Key{Type: KeyUnknown}
	}
	if k, ok := legacySequences[data]; ok {
		return k
	}
	if k, ok := parseModifiedCSI(data); ok {
		return k
	}

	// Alt+key: ESC followed by a single printable byte
	if len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e {
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}
	return Key{Type: KeyUnknown}
}

var typeNames = map[Type]string{
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackTab:   "shift+tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyEscape:    "esc",
	KeyMouse:     "mouse",
	KeyUnknown:   "unknown",
}

// String returns the binding-style name of k, e.g. "q", "ctrl+c", "alt+up".
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Shift && k.Type != KeyBackTab {
		b.WriteString("shift+")
	}
	if k.Type == KeyRune {
		switch k.Rune {
		case ' ':
			b.WriteString("space")
		default:
			b.WriteRune(k.Rune)
		}
		return b.String()
	}
	if name, ok := typeNames[k.Type]; ok {
		b.WriteString(name)
		return b.String()
	}
	return "unknown"
}
