// Package starship renders the cached whisper feed as a single line for use
// as a starship custom module. It never fetches; it reads the snapshot the
// viewer's poller saved last.
package starship

import (
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/cache"
	"gitlab.com/tinyland/lab/whispers/pkg/feed"
)

// Config controls which segments appear in the starship output.
type Config struct {
	Cache  *cache.Store
	Source string // feed source name the snapshot is keyed by

	ShowLatest bool
	ShowCount  bool
	ShowAge    bool

	MaxWidth   int           // max visible width (default 60)
	StaleAfter time.Duration // snapshot age that turns the age segment yellow (default 15m)

	Now func() time.Time
}

// DefaultConfig shows every segment.
func DefaultConfig(store *cache.Store, source string) Config {
	return Config{
		Cache:      store,
		Source:     source,
		ShowLatest: true,
		ShowCount:  true,
		ShowAge:    true,
	}
}

// Segment represents a single piece of the status line.
type Segment struct {
	Icon  string
	Text  string
	Color string // ANSI color code
}

const (
	ssDefaultMaxWidth   = 60
	ssDefaultStaleAfter = 15 * time.Minute
)

// Render reads the cached snapshot and produces a single-line starship
// module string. It returns "" when nothing is cached so starship hides the
// module.
func Render(cfg Config) string {
	maxWidth := cfg.MaxWidth
	if maxWidth <= 0 {
		maxWidth = ssDefaultMaxWidth
	}
	stale := cfg.StaleAfter
	if stale <= 0 {
		stale = ssDefaultStaleAfter
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	ws, saved, err := feed.LoadSnapshot(cfg.Cache, cfg.Source)
	if err != nil || len(ws) == 0 {
		return ""
	}

	var segments []*Segment
	if cfg.ShowLatest {
		segments = append(segments, ssLatestSegment(ws, now()))
	}
	if cfg.ShowCount {
		segments = append(segments, ssCountSegment(len(ws)))
	}
	if cfg.ShowAge {
		segments = append(segments, ssAgeSegment(saved, now(), stale))
	}
	return ssFormatLine(segments, maxWidth)
}
