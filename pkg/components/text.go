// Package components provides the small rendering primitives shared by the
// whisper list and viewer: ANSI-aware text fitting and the countdown ring.
package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to text cut to fit.
const Ellipsis = "…"

// VisibleLen returns the visible width of s in terminal cells, ignoring
// escape sequences and counting wide characters as two.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells, ending with an ellipsis when
// anything was dropped.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with trailing spaces to width cells.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// PadCenter centers s within width cells. The extra space of an odd
// remainder goes on the right.
func PadCenter(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	total := width - vis
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// Wrap word-wraps s at width cells. Existing newlines are kept.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// Clamp wraps s at width and keeps at most maxLines lines. When lines are
// dropped, the last kept line ends with an ellipsis.
func Clamp(s string, width, maxLines int) []string {
	lines := Wrap(s, width)
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := strings.TrimRight(lines[maxLines-1], " ")
	if VisibleLen(last)+VisibleLen(Ellipsis) > width {
		last = ansi.Truncate(last, width-VisibleLen(Ellipsis), "")
	}
	lines[maxLines-1] = last + Ellipsis
	return lines
}

// RelativeTime renders t relative to now the way whisper cards show dates:
// "just now", "5m ago", "3h ago", "2d ago", then a short calendar date.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h ago"
	case d < 7*24*time.Hour:
		return strconv.Itoa(int(d/(24*time.Hour))) + "d ago"
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}
