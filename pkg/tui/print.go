package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/theme"
	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// PrintList writes every whisper as a full-width card, for non-interactive
// output. Content is wrapped, not clamped.
func PrintList(w io.Writer, ws []whisper.Whisper, st Styles, width int, now time.Time) error {
	if width < 20 {
		width = 20
	}
	if len(ws) == 0 {
		_, err := fmt.Fprintln(w, st.Dim.Render("No whispers yet."))
		return err
	}
	for _, item := range ws {
		inner := width - 4
		body := st.Text.Render(strings.Join(components.Wrap(item.Content, inner), "\n")) + "\n" +
			st.Dim.Render(components.Truncate(metaLine(item, now), inner))
		card := st.Card.
			BorderForeground(lipgloss.Color(theme.TagColor(st.Theme, item.Color))).
			Width(width - 2).
			Render(body)
		if _, err := fmt.Fprintln(w, card); err != nil {
			return err
		}
	}
	return nil
}
