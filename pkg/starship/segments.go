package starship

import (
	"fmt"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/tui"
	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// ANSI color constants used for segment thresholds.
const (
	ssColorGreen   = "\033[32m"
	ssColorYellow  = "\033[33m"
	ssColorRed     = "\033[31m"
	ssColorMagenta = "\033[35m"
	ssColorDim     = "\033[2m"
)

// ssLatestWidth caps the whisper excerpt so the count and age segments
// still fit in the default width.
const ssLatestWidth = 32

// ssLatestSegment shows an excerpt of the newest whisper.
// Example: "☾ the moon is a night light…"
func ssLatestSegment(ws []whisper.Whisper, now time.Time) *Segment {
	latest := ws[0]
	for _, w := range ws[1:] {
		if w.Date.After(latest.Date) {
			latest = w
		}
	}
	text := strings.Join(strings.Fields(latest.Content), " ")
	text = components.Truncate(text, ssLatestWidth)
	if !latest.Date.IsZero() && now.Sub(latest.Date) < time.Hour {
		text += " (" + components.RelativeTime(latest.Date, now) + ")"
	}
	return &Segment{
		Icon:  tui.Icon(latest.Icon),
		Text:  text,
		Color: ssColorMagenta,
	}
}

// ssCountSegment shows how many whispers the snapshot holds.
// Example: "✉ 12 whispers"
func ssCountSegment(n int) *Segment {
	noun := "whispers"
	if n == 1 {
		noun = "whisper"
	}
	return &Segment{
		Icon:  "✉",
		Text:  fmt.Sprintf("%d %s", n, noun),
		Color: ssColorDim,
	}
}

// ssAgeSegment shows when the snapshot was saved, coloured by staleness:
// green while fresh, yellow past stale, red past four times stale.
// Example: "⟳ 5m ago"
func ssAgeSegment(saved, now time.Time, stale time.Duration) *Segment {
	age := now.Sub(saved)
	color := ssColorGreen
	switch {
	case age > 4*stale:
		color = ssColorRed
	case age > stale:
		color = ssColorYellow
	}
	return &Segment{
		Icon:  "⟳",
		Text:  components.RelativeTime(saved, now),
		Color: color,
	}
}
