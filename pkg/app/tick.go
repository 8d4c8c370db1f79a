package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/whispers/pkg/feed"
)

// TickCmd returns a Cmd that sends a TickEvent after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// WaitForUpdate returns a Cmd that blocks for the next feed update. It
// returns nil for a nil channel, and the Cmd yields nil once ch is closed.
func WaitForUpdate(ch <-chan feed.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return FeedUpdateEvent{Update: u}
	}
}
