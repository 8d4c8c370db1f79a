package emacs

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gitlab.com/tinyland/lab/whispers/pkg/cache"
)

// RenderPropertized produces one line per whisper with Emacs text property
// annotations.
// Format: #("text" start end (face face-name)) for each styled span.
func RenderPropertized(store *cache.Store, source string, now time.Time) string {
	out := Build(store, source, now)
	if len(out.Whispers) == 0 {
		return emPropertize("No whispers cached", "font-lock-comment-face")
	}

	lines := make([]string, 0, len(out.Whispers))
	for _, w := range out.Whispers {
		parts := []string{
			emPropertize(w.Glyph, "font-lock-keyword-face"),
			emPropertize(strings.Join(strings.Fields(w.Content), " "), "font-lock-string-face"),
		}
		if w.Relative != "" {
			parts = append(parts, emPropertize(w.Relative, "font-lock-comment-face"))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// emPropertize wraps text in Emacs propertized string format. Positions are
// character offsets, as Emacs counts them.
func emPropertize(text, face string) string {
	return fmt.Sprintf("#(%q 0 %d (face %s))", text, utf8.RuneCountInString(text), face)
}
