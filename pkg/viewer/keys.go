package viewer

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the set of bindings that are live while a whisper is open.
type KeyMap struct {
	Close key.Binding
	Prev  key.Binding
	Next  key.Binding
}

// DefaultKeyMap returns Escape to close, Left for previous, and Right or
// Space for next.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→/space", "next"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
