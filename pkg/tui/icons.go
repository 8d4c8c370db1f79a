package tui

import "strings"

var iconGlyphs = map[string]string{
	"moon":    "☾",
	"sun":     "☀",
	"star":    "★",
	"spark":   "✦",
	"heart":   "♥",
	"leaf":    "❦",
	"cloud":   "☁",
	"coffee":  "☕",
	"music":   "♪",
	"flower":  "✿",
	"bolt":    "ϟ",
	"message": "✉",
}

// DefaultIcon is drawn for whispers without a known icon tag.
const DefaultIcon = "✧"

// Icon maps a whisper icon tag to a glyph. A tag that is already a single
// non-ASCII glyph is drawn as-is.
func Icon(tag string) string {
	tag = strings.TrimSpace(tag)
	if g, ok := iconGlyphs[strings.ToLower(tag)]; ok {
		return g
	}
	if r := []rune(tag); len(r) == 1 && r[0] > 0x7f {
		return tag
	}
	return DefaultIcon
}
