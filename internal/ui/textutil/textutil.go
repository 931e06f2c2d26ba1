// Package textutil provides unicode-aware text utilities for TUI rendering.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate truncates a string to fit within maxWidth visual columns.
// If truncation is needed, it appends the unicode ellipsis character (…).
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	available := maxWidth - VisualWidth(TruncateEllipsis)
	if available < 0 {
		return TruncateEllipsis
	}

	var b strings.Builder
	width := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > available {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	return b.String() + TruncateEllipsis
}

// PadRightVisual pads s with spaces to exactly targetWidth visual columns,
// truncating when it is wider.
func PadRightVisual(s string, targetWidth int) string {
	w := VisualWidth(s)
	if w >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return s + strings.Repeat(" ", targetWidth-w)
}

// FitBlock clips s to a width x height cell block: every line is truncated
// or padded to width, extra lines are dropped and missing ones are blank.
// Tabs are expanded to four spaces first.
func FitBlock(s string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(s, "\t", "    "), "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = strings.TrimRight(lines[i], "\r")
		}
		out[i] = PadRightVisual(line, width)
	}
	return out
}
