// Package emacs provides output formats suitable for Emacs consumption: a
// JSON document for Elisp parsing and propertized text that `read` turns
// into a styled string. Both render the cached whisper snapshot.
package emacs

import (
	"encoding/json"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/cache"
	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/feed"
	"gitlab.com/tinyland/lab/whispers/pkg/tui"
)

// Version is the emacs integration protocol version.
const Version = "1.0.0"

// JSONOutput is the full feed state as JSON for Elisp parsing.
type JSONOutput struct {
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	SavedAt   string        `json:"saved_at,omitempty"`
	Source    string        `json:"source"`
	Whispers  []WhisperJSON `json:"whispers"`
}

// WhisperJSON is one whisper with display-ready fields added.
type WhisperJSON struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	Date       string `json:"date,omitempty"`
	Relative   string `json:"relative,omitempty"`
	Glyph      string `json:"glyph"`
	Color      string `json:"color,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
}

// Build reads the snapshot for source. A missing snapshot yields an empty
// whisper list rather than an error so Elisp callers can render "no data".
func Build(store *cache.Store, source string, now time.Time) JSONOutput {
	out := JSONOutput{
		Version:   Version,
		Timestamp: now.UTC().Format(time.RFC3339),
		Source:    source,
		Whispers:  []WhisperJSON{},
	}
	ws, saved, err := feed.LoadSnapshot(store, source)
	if err != nil {
		return out
	}
	out.SavedAt = saved.UTC().Format(time.RFC3339)
	for _, w := range ws {
		wj := WhisperJSON{
			ID:         w.ID,
			Content:    w.Content,
			Glyph:      tui.Icon(w.Icon),
			Color:      w.Color,
			AuthorName: w.AuthorName,
		}
		if !w.Date.IsZero() {
			wj.Date = w.Date.UTC().Format(time.RFC3339)
			wj.Relative = components.RelativeTime(w.Date, now)
		}
		out.Whispers = append(out.Whispers, wj)
	}
	return out
}

// RenderJSON returns Build's result encoded as indented JSON.
func RenderJSON(store *cache.Store, source string, now time.Time) (string, error) {
	data, err := json.MarshalIndent(Build(store, source, now), "", "  ")
	if err != nil {
		return "", fmt.Errorf("emacs json: %w", err)
	}
	return string(data), nil
}
