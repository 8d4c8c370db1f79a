// Package feed fetches whisper snapshots from a backing source and delivers
// them to the UI. A Poller runs one Source on its interval and fans results
// into a single updates channel consumed by the bubbletea program.
package feed

import (
	"context"
	"sort"
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// DefaultUpdateBufferSize is the recommended capacity for the updates channel.
const DefaultUpdateBufferSize = 8

// Source is a place whispers come from.
type Source interface {
	// Name identifies the source in logs, updates and cache keys.
	Name() string

	// Fetch returns the current whispers, newest first.
	Fetch(ctx context.Context) ([]whisper.Whisper, error)

	// Interval is how often the Poller calls Fetch. Zero disables polling;
	// the source is then fetched once and on Refresh.
	Interval() time.Duration
}

// Update carries the result of one fetch.
type Update struct {
	Source    string
	Whispers  []whisper.Whisper
	Timestamp time.Time
	Error     error

	// Cached is set when Whispers came from the snapshot cache instead of
	// a live fetch.
	Cached bool
}

// Status tracks the runtime state of the polled source.
type Status struct {
	Source      string
	Healthy     bool
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// sortNewestFirst orders whispers reverse-chronologically. Ties keep their
// incoming order.
func sortNewestFirst(ws []whisper.Whisper) {
	sort.SliceStable(ws, func(i, j int) bool {
		return ws[i].Date.After(ws[j].Date)
	})
}
