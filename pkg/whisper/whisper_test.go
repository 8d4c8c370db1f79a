package whisper

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sample() []Whisper {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Whisper{
		{ID: "a", Content: "first", Date: base},
		{ID: "b", Content: "second", Date: base.Add(-time.Hour), AuthorName: "robin"},
		{ID: "c", Content: "third", Date: base.Add(-2 * time.Hour), Color: "violet"},
	}
}

func TestNewStoreKeepsOrder(t *testing.T) {
	s, err := NewStore(sample())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if s.Size() != 3 {
		t.Fatalf("Size = %d, want 3", s.Size())
	}
	if diff := cmp.Diff(sample(), s.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStoreRejectsDuplicateID(t *testing.T) {
	items := sample()
	items[2].ID = "a"

	_, err := NewStore(items)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestNewStoreRejectsEmptyID(t *testing.T) {
	items := sample()
	items[1].ID = ""

	_, err := NewStore(items)
	if !errors.Is(err, ErrEmptyID) {
		t.Fatalf("err = %v, want ErrEmptyID", err)
	}
}

func TestNewStoreCopiesInput(t *testing.T) {
	items := sample()
	s := MustStore(items...)

	items[0].Content = "mutated"
	if got := s.At(0).Content; got != "first" {
		t.Errorf("At(0).Content = %q, store should not alias caller slice", got)
	}
}

func TestFindByIDAndIndexOf(t *testing.T) {
	s := MustStore(sample()...)

	w, ok := s.FindByID("b")
	if !ok {
		t.Fatal("FindByID(b) not found")
	}
	if w.AuthorName != "robin" {
		t.Errorf("AuthorName = %q, want %q", w.AuthorName, "robin")
	}

	i, ok := s.IndexOf("c")
	if !ok || i != 2 {
		t.Errorf("IndexOf(c) = %d, %v; want 2, true", i, ok)
	}

	if _, ok := s.FindByID("missing"); ok {
		t.Error("FindByID(missing) should report not found")
	}
	if _, ok := s.IndexOf("missing"); ok {
		t.Error("IndexOf(missing) should report not found")
	}
}

func TestNilStoreIsEmpty(t *testing.T) {
	var s *Store

	if s.Size() != 0 {
		t.Errorf("nil Size = %d, want 0", s.Size())
	}
	if _, ok := s.FindByID("a"); ok {
		t.Error("nil FindByID should not find anything")
	}
	if s.All() != nil {
		t.Error("nil All should be nil")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := MustStore(sample()...)
	all := s.All()
	all[0].ID = "zzz"

	if _, ok := s.FindByID("a"); !ok {
		t.Error("mutating All() result changed the store")
	}
}
