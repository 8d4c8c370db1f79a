// Package cache persists the last good whisper snapshot per feed source so
// the viewer has something to show while the feed is unreachable.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileExt = ".snap"

// ErrMiss is returned when a key is absent, expired or unreadable.
var ErrMiss = errors.New("cache: miss")

// Config holds configuration for a Store.
type Config struct {
	// Dir is where snapshot files live. It is created if missing.
	Dir string

	// TTL bounds how old a snapshot may be before Get ignores it.
	// Zero keeps snapshots forever.
	TTL time.Duration
}

// Stats holds hit and miss counters.
type Stats struct {
	Hits   int64
	Misses int64
	Writes int64
}

// envelope is the on-disk format of one entry.
type envelope struct {
	Key     string          `json:"key"`
	SavedAt time.Time       `json:"saved_at"`
	Payload json.RawMessage `json:"payload"`
}

// Store is a small disk-backed snapshot cache. Each key is one JSON file
// written atomically via temp file and rename.
type Store struct {
	cfg Config
	now func() time.Time

	mu    sync.Mutex
	stats Stats
}

// NewStore creates the cache directory and returns a Store over it.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("cache: empty directory")
	}
	if cfg.TTL < 0 {
		cfg.TTL = 0
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", cfg.Dir, err)
	}
	return &Store{cfg: cfg, now: time.Now}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.cfg.Dir }

// Get returns the raw payload stored under key and when it was saved. A nil
// store always misses.
func (s *Store) Get(key string) ([]byte, time.Time, error) {
	if s == nil {
		return nil, time.Time{}, ErrMiss
	}
	env, err := s.read(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.stats.Misses++
		return nil, time.Time{}, err
	}
	s.stats.Hits++
	return env.Payload, env.SavedAt, nil
}

// Put stores payload under key, replacing any earlier entry.
func (s *Store) Put(key string, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("cache: payload for %q is not JSON", key)
	}
	data, err := json.Marshal(envelope{Key: key, SavedAt: s.now().UTC(), Payload: payload})
	if err != nil {
		return fmt.Errorf("cache: marshal %q: %w", key, err)
	}
	if err := atomicWrite(s.path(key), data, s.cfg.Dir); err != nil {
		return fmt.Errorf("cache: write %q: %w", key, err)
	}
	s.mu.Lock()
	s.stats.Writes++
	s.mu.Unlock()
	return nil
}

// Delete removes the entry for key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: delete %q: %w", key, err)
	}
	return nil
}

// Prune removes expired and corrupt entries and reports how many it removed.
func (s *Store) Prune() (int, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return 0, fmt.Errorf("cache: read dir: %w", err)
	}
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		full := filepath.Join(s.cfg.Dir, name)
		if strings.HasPrefix(name, ".tmp-") {
			if os.Remove(full) == nil {
				removed++
			}
			continue
		}
		if !strings.HasSuffix(name, fileExt) {
			continue
		}
		env, err := readEnvelope(full)
		if err == nil && !s.expired(env) {
			continue
		}
		if os.Remove(full) == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats returns a snapshot of the counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Store) path(key string) string {
	return filepath.Join(s.cfg.Dir, hashKey(key)+fileExt)
}

func (s *Store) read(key string) (envelope, error) {
	env, err := readEnvelope(s.path(key))
	if err != nil {
		return envelope{}, ErrMiss
	}
	// Distinct keys can share a hash prefix; the stored key disambiguates.
	if env.Key != key || s.expired(env) {
		return envelope{}, ErrMiss
	}
	return env, nil
}

func (s *Store) expired(env envelope) bool {
	if s.cfg.TTL == 0 {
		return false
	}
	return s.now().Sub(env.SavedAt) > s.cfg.TTL
}

func readEnvelope(path string) (envelope, error) {
	var env envelope
	data, err := os.ReadFile(path)
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, err
	}
	return env, nil
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}
