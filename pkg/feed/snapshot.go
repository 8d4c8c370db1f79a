package feed

import (
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/cache"
	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

func snapshotKey(source string) string {
	return "feed:" + source
}

// SaveSnapshot persists the last good fetch for source.
func SaveSnapshot(c *cache.Store, source string, ws []whisper.Whisper) error {
	return cache.PutTyped(c, snapshotKey(source), ws)
}

// LoadSnapshot returns the last good fetch for source and when it was saved.
// It returns cache.ErrMiss when nothing usable is cached.
func LoadSnapshot(c *cache.Store, source string) ([]whisper.Whisper, time.Time, error) {
	return cache.GetTyped[[]whisper.Whisper](c, snapshotKey(source))
}
