// ABOUTME: Pins lipgloss background detection so adaptive colors never send OSC 11 queries
// ABOUTME: A query answered while stdin is in raw mode would arrive as stray key presses

package termfix

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PinBackground tells lipgloss whether the terminal background is dark,
// using COLORFGBG when set and assuming dark otherwise. Call it before
// the terminal enters raw mode.
func PinBackground(getenv func(string) string) (dark bool) {
	dark = true
	if d, ok := darkFromCOLORFGBG(getenv("COLORFGBG")); ok {
		dark = d
	}
	lipgloss.SetHasDarkBackground(dark)
	return dark
}

// darkFromCOLORFGBG reads the background index from "fg;bg" or
// "fg;default;bg". Indexes 7 and 15 are light backgrounds.
func darkFromCOLORFGBG(v string) (dark, ok bool) {
	if v == "" {
		return false, false
	}
	fields := strings.Split(v, ";")
	bg, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || bg < 0 {
		return false, false
	}
	return bg != 7 && bg != 15, true
}
