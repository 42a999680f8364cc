// ABOUTME: Binding parses configured key names ("q", "ctrl+c", "esc") and matches Keys against them
// ABOUTME: Used for the quit key; names follow Key.String so bindings round-trip

package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrEmptyBinding is returned by ParseBinding for an empty name.
var ErrEmptyBinding = errors.New("empty key binding")

// Binding is a key combination from configuration.
type Binding struct {
	want Key
}

var namedTypes = map[string]Type{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pgup":      KeyPageUp,
	"pgdown":    KeyPageDown,
	"esc":       KeyEscape,
	"escape":    KeyEscape,
}

// ParseBinding parses a name such as "q", "Q", "ctrl+c", "alt+x" or "esc".
func ParseBinding(name string) (Binding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Binding{}, ErrEmptyBinding
	}

	var k Key
	parts := strings.Split(name, "+")
	last := parts[len(parts)-1]
	if last == "" && len(parts) > 1 {
		// "ctrl++" style: the key itself is '+'.
		last = "+"
		parts = parts[:len(parts)-1]
	}
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl":
			k.Ctrl = true
		case "alt":
			k.Alt = true
		case "shift":
			k.Shift = true
		case "":
		default:
			return Binding{}, fmt.Errorf("key binding %q: unknown modifier %q", name, mod)
		}
	}

	switch lower := strings.ToLower(last); {
	case utf8.RuneCountInString(last) == 1:
		r, _ := utf8.DecodeRuneInString(last)
		k.Type = KeyRune
		k.Rune = r
		if k.Ctrl {
			k.Rune = []rune(lower)[0]
		}
	case lower == "space":
		k.Type = KeyRune
		k.Rune = ' '
	case lower == "shift+tab" || lower == "backtab":
		k.Type = KeyBackTab
		k.Shift = true
	default:
		t, ok := namedTypes[lower]
		if !ok {
			return Binding{}, fmt.Errorf("key binding %q: unknown key %q", name, last)
		}
		k.Type = t
		if t == KeyTab && k.Shift {
			k.Type = KeyBackTab
		}
	}
	return Binding{want: k}, nil
}

// MustParseBinding is ParseBinding for compile-time constants; it panics on error.
func MustParseBinding(name string) Binding {
	b, err := ParseBinding(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Matches reports whether k is the bound key. For printable runes the
// shift state is carried by the rune itself, so Shift is not compared.
func (b Binding) Matches(k Key) bool {
	w := b.want
	if k.Type != w.Type || k.Ctrl != w.Ctrl || k.Alt != w.Alt {
		return false
	}
	if w.Type == KeyRune {
		return k.Rune == w.Rune
	}
	return k.Shift == w.Shift
}

// Key returns the key the binding matches.
func (b Binding) Key() Key {
	return b.want
}

// String returns the canonical name of the binding.
func (b Binding) String() string {
	return b.want.String()
}
