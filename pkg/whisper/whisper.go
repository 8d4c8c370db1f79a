// Package whisper defines the whisper record and the read-only ordered
// snapshot the viewer navigates over. A Store is never mutated after
// construction; callers replace it wholesale after a refetch.
package whisper

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyID is returned when a whisper has no identifier.
	ErrEmptyID = errors.New("whisper: empty id")

	// ErrDuplicateID is returned when two whispers share an identifier.
	ErrDuplicateID = errors.New("whisper: duplicate id")
)

// Whisper is a single short post. Icon and Color are presentational tags
// that the viewer passes through untouched.
type Whisper struct {
	ID         string    `json:"id" yaml:"id"`
	Content    string    `json:"content" yaml:"content"`
	Date       time.Time `json:"date" yaml:"date"`
	Icon       string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color      string    `json:"color,omitempty" yaml:"color,omitempty"`
	AuthorName string    `json:"authorName,omitempty" yaml:"authorName,omitempty"`
}

// Store is an ordered, immutable snapshot of whispers. Order is whatever the
// caller supplied (reverse-chronological by convention). A nil *Store is
// valid and behaves as an empty store.
type Store struct {
	items []Whisper
	index map[string]int
}

// NewStore copies items into a new Store. Every ID must be non-empty and
// unique within the snapshot.
func NewStore(items []Whisper) (*Store, error) {
	s := &Store{
		items: make([]Whisper, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(s.items, items)

	for i, w := range s.items {
		if w.ID == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyID, i)
		}
		if prev, ok := s.index[w.ID]; ok {
			return nil, fmt.Errorf("%w %q at positions %d and %d", ErrDuplicateID, w.ID, prev, i)
		}
		s.index[w.ID] = i
	}
	return s, nil
}

// MustStore is like NewStore but panics on invalid input. Intended for
// tests and static fixtures.
func MustStore(items ...Whisper) *Store {
	s, err := NewStore(items)
	if err != nil {
		panic(err)
	}
	return s
}

// Size returns the number of whispers in the store.
func (s *Store) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// FindByID returns the whisper with the given id.
func (s *Store) FindByID(id string) (Whisper, bool) {
	i, ok := s.IndexOf(id)
	if !ok {
		return Whisper{}, false
	}
	return s.items[i], true
}

// IndexOf returns the ordinal position of id in the store.
func (s *Store) IndexOf(id string) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[id]
	return i, ok
}

// At returns the whisper at position i. It panics if i is out of range,
// matching slice semantics.
func (s *Store) At(i int) Whisper {
	return s.items[i]
}

// All returns a copy of the whispers in store order.
func (s *Store) All() []Whisper {
	if s == nil {
		return nil
	}
	out := make([]Whisper, len(s.items))
	copy(out, s.items)
	return out
}
