// ABOUTME: Legacy escape sequence mappings for CSI and SS3 terminal key codes.
// ABOUTME: Also decodes xterm modifier parameters (CSI 1;<mod><letter>, CSI <n>;<mod>~).

package key

import (
	"strconv"
	"strings"
)

// legacySequences maps standard CSI and SS3 escape sequences to Key values.
var legacySequences = map[string]Key{
	"\x1b[A":  {Type: KeyUp},
	"\x1b[B":  {Type: KeyDown},
	"\x1b[C":  {Type: KeyRight},
	"\x1b[D":  {Type: KeyLeft},
	"\x1b[H":  {Type: KeyHome},
	"\x1b[F":  {Type: KeyEnd},
	"\x1b[1~": {Type: KeyHome},
	"\x1b[4~": {Type: KeyEnd},
	"\x1b[5~": {Type: KeyPageUp},
	"\x1b[6~": {Type: KeyPageDown},
	"\x1b[3~": {Type: KeyDelete},
	"\x1b[Z":  {Type: KeyBackTab, Shift: true},

	// SS3 variants (application cursor mode)
	"\x1bOA": {Type: KeyUp},
	"\x1bOB": {Type: KeyDown},
	"\x1bOC": {Type: KeyRight},
	"\x1bOD": {Type: KeyLeft},
	"\x1bOH": {Type: KeyHome},
	"\x1bOF": {Type: KeyEnd},
}

var letterTypes = map[byte]Type{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeTypes = map[int]Type{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
}

// parseModifiedCSI handles "ESC [ <n> ; <mod> <final>" where final is a
// cursor letter or '~'. The modifier is the xterm encoding 1+bitmask.
func parseModifiedCSI(data string) (Key, bool) {
	if len(data) < 6 || !strings.HasPrefix(data, "\x1b[") {
		return Key{}, false
	}
	final := data[len(data)-1]
	numStr, modStr, ok := strings.Cut(data[2:len(data)-1], ";")
	if !ok {
		return Key{}, false
	}
	mod, err := strconv.Atoi(modStr)
	if err != nil || mod < 1 {
		return Key{}, false
	}

	var k Key
	if final == '~' {
		n, err := strconv.Atoi(numStr)
		if err != nil {
			return Key{}, false
		}
		t, found := tildeTypes[n]
		if !found {
			return Key{}, false
		}
		k.Type = t
	} else {
		t, found := letterTypes[final]
		if !found || numStr != "1" {
			return Key{}, false
		}
		k.Type = t
	}

	bits := mod - 1
	k.Shift = bits&1 != 0
	k.Alt = bits&2 != 0
	k.Ctrl = bits&4 != 0
	return k, true
}
