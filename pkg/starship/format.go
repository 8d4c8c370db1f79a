package starship

import (
	"strings"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
)

// ssAnsiReset is the ANSI escape sequence to reset all text attributes.
const ssAnsiReset = "\033[0m"

// ssSeparator is the dim separator character placed between segments.
const ssSeparator = "\033[2m│\033[0m"

// ssColorize wraps text in the given ANSI color code and appends a reset
// sequence. If color is empty, text is returned unmodified.
func ssColorize(text, color string) string {
	if color == "" {
		return text
	}
	return color + text + ssAnsiReset
}

// ssFormatLine joins segments with a dim separator and drops trailing
// segments once the visible width would exceed maxWidth. The first segment
// is truncated rather than dropped so the line is never empty when data
// exists.
func ssFormatLine(segments []*Segment, maxWidth int) string {
	if len(segments) == 0 {
		return ""
	}

	// Separator plus its surrounding spaces.
	const sepWidth = 3

	var b strings.Builder
	total := 0
	for i, seg := range segments {
		full := seg.Icon + " " + seg.Text
		w := components.VisibleLen(full)
		if i == 0 {
			if w > maxWidth {
				full = components.Truncate(full, maxWidth)
				w = components.VisibleLen(full)
			}
		} else {
			if total+sepWidth+w > maxWidth {
				break
			}
			b.WriteString(" " + ssSeparator + " ")
			total += sepWidth
		}
		b.WriteString(ssColorize(full, seg.Color))
		total += w
	}
	return b.String()
}
