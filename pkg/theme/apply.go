package theme

import "strings"

// tagPalette maps the colour tags whispers are published with to hex values.
var tagPalette = map[string]string{
	"rose":    "#f43f5e",
	"red":     "#ef4444",
	"amber":   "#f59e0b",
	"yellow":  "#eab308",
	"emerald": "#10b981",
	"green":   "#22c55e",
	"teal":    "#14b8a6",
	"sky":     "#0ea5e9",
	"blue":    "#3b82f6",
	"indigo":  "#6366f1",
	"violet":  "#8b5cf6",
	"purple":  "#a855f7",
	"pink":    "#ec4899",
	"slate":   "#64748b",
}

// TagColor resolves a whisper colour tag to a hex colour. Hex tags pass
// through; known names map through the tag palette; anything else falls
// back to the theme accent.
func TagColor(t Theme, tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if thHexColorRegex.MatchString(tag) {
		return tag
	}
	if hex, ok := tagPalette[tag]; ok {
		return hex
	}
	return t.Accent
}

// RingColors returns the remaining and consumed arc colours for a countdown
// at the given progress (0-100). The last fifth of the dwell switches the
// remaining arc to the accent colour.
func RingColors(t Theme, progress float64) (remaining, consumed string) {
	if progress >= 80 {
		return t.Accent, t.RingEmpty
	}
	return t.RingFilled, t.RingEmpty
}
