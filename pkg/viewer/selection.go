package viewer

// Selection is a snapshot of what the viewer shows right now.
type Selection struct {
	// ExpandedID is the visible whisper, or "" when the viewer is closed.
	ExpandedID string

	// Slide is non-none only while a transition is pending.
	Slide Slide

	// Progress is the share of the dwell time elapsed, in [0, 100).
	Progress float64
}

// selection is the mutable state behind Selection. Progress lives in the
// rotation timer; everything that changes the visible whisper goes through
// these methods so the countdown reset cannot be skipped.
type selection struct {
	expandedID string
	slide      Slide
}

func (s *selection) open(id string) {
	s.expandedID = id
	s.slide = SlideNone
}

func (s *selection) close() {
	s.expandedID = ""
	s.slide = SlideNone
}

func (s *selection) beginTransition(d Direction) {
	if d == Prev {
		s.slide = SlideRight
		return
	}
	s.slide = SlideLeft
}

func (s *selection) commitTransition(id string) {
	s.expandedID = id
	s.slide = SlideNone
}
