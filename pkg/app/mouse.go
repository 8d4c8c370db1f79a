package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/whispers/pkg/tui"
	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
)

// ZoneBackdrop is the click target for anywhere outside the open card.
const ZoneBackdrop = "backdrop"

// handleMouse resolves a left click to a zone and applies it.
func (m *AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	return m.Click(m.hitTest(msg))
}

func (m *AppModel) hitTest(msg tea.MouseMsg) string {
	if m.viewer.IsOpen() {
		for _, id := range []string{tui.ZoneViewerClose, tui.ZoneViewerPrev, tui.ZoneViewerNext, tui.ZoneViewerCard} {
			if m.zones.Get(id).InBounds(msg) {
				return id
			}
		}
		return ZoneBackdrop
	}
	for _, pos := range m.visible {
		id := tui.CardZone(m.store.At(pos).ID)
		if m.zones.Get(id).InBounds(msg) {
			return id
		}
	}
	return ""
}

// Click applies a click on target. While a whisper is open, clicks on the
// card body do nothing, the arrows navigate, and the close button or the
// backdrop close the viewer. While closed, clicking a card opens it.
func (m *AppModel) Click(target string) tea.Cmd {
	if m.viewer.IsOpen() {
		return m.withViewer(func() tea.Cmd {
			switch target {
			case tui.ZoneViewerClose, ZoneBackdrop:
				m.viewer.Close()
			case tui.ZoneViewerPrev:
				return m.viewer.Navigate(viewer.Prev)
			case tui.ZoneViewerNext:
				return m.viewer.Navigate(viewer.Next)
			}
			return nil
		})
	}
	if id, ok := strings.CutPrefix(target, tui.CardZone("")); ok && id != "" {
		return m.Open(id)
	}
	return nil
}
