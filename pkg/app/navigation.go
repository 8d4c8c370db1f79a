package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/whispers/pkg/tui"
	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
)

// CycleFocusForward moves focus to the next card, wrapping around to the
// first card after the last.
func (m *AppModel) CycleFocusForward() {
	if len(m.visible) == 0 {
		return
	}
	m.focused = viewer.NextIndex(m.focused, len(m.visible))
}

// CycleFocusBackward moves focus to the previous card, wrapping around to
// the last card before the first.
func (m *AppModel) CycleFocusBackward() {
	if len(m.visible) == 0 {
		return
	}
	m.focused = viewer.PrevIndex(m.focused, len(m.visible))
}

// MoveFocusRows moves focus by delta grid rows, clamping at the edges.
func (m *AppModel) MoveFocusRows(delta int) {
	if len(m.visible) == 0 {
		return
	}
	i := m.focused + delta*tui.Columns(m.width)
	switch {
	case i < 0:
		i = 0
	case i >= len(m.visible):
		i = len(m.visible) - 1
	}
	m.focused = i
}

// FocusWhisper moves focus to the card showing id. If the whisper is not
// in the list, focus does not change.
func (m *AppModel) FocusWhisper(id string) {
	if id == "" {
		return
	}
	for i, pos := range m.visible {
		if m.store.At(pos).ID == id {
			m.focused = i
			return
		}
	}
}

// FocusedID returns the id of the focused card, or "" for an empty list.
func (m AppModel) FocusedID() string {
	if m.focused < 0 || m.focused >= len(m.visible) {
		return ""
	}
	return m.store.At(m.visible[m.focused]).ID
}

// Focused returns the focused card's position in the list.
func (m AppModel) Focused() int { return m.focused }

// Visible returns the number of cards in the list.
func (m AppModel) Visible() int { return len(m.visible) }

// OpenFocused opens the viewer on the focused card.
func (m *AppModel) OpenFocused() tea.Cmd {
	id := m.FocusedID()
	if id == "" {
		return nil
	}
	return m.Open(id)
}

// Open opens the viewer on id and focuses its card.
func (m *AppModel) Open(id string) tea.Cmd {
	m.FocusWhisper(id)
	m.showHelp = false
	return m.viewer.Open(id)
}
