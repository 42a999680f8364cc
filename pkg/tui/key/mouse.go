// ABOUTME: SGR (1006) mouse report framing: ESC [ < b ; x ; y (M|m)
// ABOUTME: Complete reports parse as KeyMouse so the listener can drop them

package key

const sgrMousePrefix = "\x1b[<"

// mouseSequenceLen returns the byte length of the SGR mouse report at the
// start of data and whether it is complete.
func mouseSequenceLen(data string) (int, bool) {
	if len(data) < len(sgrMousePrefix) || data[:len(sgrMousePrefix)] != sgrMousePrefix {
		return 0, false
	}
	for i := len(sgrMousePrefix); i < len(data); i++ {
		switch c := data[i]; {
		case c == 'M' || c == 'm':
			return i + 1, true
		case c == ';' || (c >= '0' && c <= '9'):
		default:
			return 0, false
		}
	}
	return 0, false
}
