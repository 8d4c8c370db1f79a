// Package viewer implements the expanded-whisper modal as a bubbletea
// component: which whisper is shown, slide transitions between whispers,
// and the auto-rotation countdown that advances to a random whisper after
// the dwell time elapses.
//
// All timing is expressed as bubbletea commands. Cancelling a timer means
// bumping its generation tag so that an in-flight message is dropped and
// never reschedules itself.
package viewer

import "time"

// Direction is a navigation intent.
type Direction int

const (
	Next Direction = iota
	Prev
	Random
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Prev:
		return "prev"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// Slide is the pending outward slide of the visible card.
type Slide int

const (
	SlideNone Slide = iota
	SlideLeft
	SlideRight
)

func (s Slide) String() string {
	switch s {
	case SlideLeft:
		return "left"
	case SlideRight:
		return "right"
	default:
		return "none"
	}
}

// TickMsg advances the rotation countdown by one tick interval. ID names the
// viewer instance and Tag the tick chain generation; messages from an older
// generation are ignored.
type TickMsg struct {
	ID   int
	Tag  int
	Time time.Time
}

// CommitMsg completes a slide transition by making Target the visible
// whisper. Only the most recently scheduled commit is honoured.
type CommitMsg struct {
	ID     int
	Tag    int
	Target string
}
