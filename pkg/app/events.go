// Package app provides the root Bubbletea model for the whispers viewer. It
// owns the whisper list, routes input to the open viewer and folds feed
// updates into the current snapshot.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/feed"
)

// FeedUpdateEvent carries one feed result into the update loop.
type FeedUpdateEvent struct {
	feed.Update
}

// TickEvent is sent periodically so relative dates and the feed age in the
// status bar stay current.
type TickEvent struct {
	Time time.Time
}

// ThemeChangeEvent switches the active color theme.
type ThemeChangeEvent struct {
	Theme string
}
