// ABOUTME: Column-based truncation and padding for styled text
// ABOUTME: Fit cuts or pads a line to an exact column count, keeping escape sequences intact

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Truncate cuts s so that it occupies at most cols columns. Escape
// sequences are kept, so styles opened before the cut stay balanced by
// the caller's trailing reset.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if VisibleWidth(s) <= cols {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	col := 0
	full := false
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		w := graphemeWidth(cluster)
		if full || col+w > cols {
			// Keep consuming so trailing escape sequences survive.
			full = true
			i += len(s[i:]) - len(rest)
			continue
		}
		b.WriteString(cluster)
		col += w
		i += len(s[i:]) - len(rest)
	}
	return b.String()
}

// Fit returns s truncated or right-padded with spaces to exactly cols columns.
func Fit(s string, cols int) string {
	s = Truncate(s, cols)
	if pad := cols - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
