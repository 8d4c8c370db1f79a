package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/theme"
	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
)

const (
	viewerMaxWidth = 76
	ringGutter     = 2
	ringBoxWidth   = 9

	// slideShift is how far the card moves while a transition is pending.
	slideShift = 6
)

// renderOverlay draws the open whisper centered over a shaded backdrop.
func renderOverlay(f Frame) string {
	st := f.Styles
	v := f.Viewer

	cardW := f.Width - 8
	if cardW > viewerMaxWidth {
		cardW = viewerMaxWidth
	}
	if cardW < 24 {
		cardW = f.Width
	}
	// Border (2) and horizontal padding (4).
	inner := cardW - 6
	if inner < 10 {
		inner = 10
	}

	textW := inner - ringBoxWidth - ringGutter
	showRing := textW >= 16
	if !showRing {
		textW = inner
	}

	maxLines := f.Height - 14
	if maxLines < 1 {
		maxLines = 1
	}
	text := strings.Join(components.Clamp(v.Whisper.Content, textW, maxLines), "\n")
	left := lipgloss.JoinVertical(lipgloss.Left,
		st.Accent.Render(Icon(v.Whisper.Icon)),
		"",
		st.Text.Width(textW).Render(text),
	)
	body := left
	if showRing {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(textW).Render(left),
			strings.Repeat(" ", ringGutter),
			components.Ring(v.Progress, v.Remaining, st.Ring),
		)
	}

	closeBtn := f.mark(ZoneViewerClose, st.Control.Render("✕"))
	top := lipgloss.PlaceHorizontal(inner, lipgloss.Right, closeBtn)

	meta := st.Dim.Render(components.Truncate(metaLine(v.Whisper, f.Now), inner))

	prev := f.mark(ZoneViewerPrev, st.Control.Render("‹ prev"))
	next := f.mark(ZoneViewerNext, st.Control.Render("next ›"))
	pos := st.Dim.Render(fmt.Sprintf("%d / %d", v.Position, v.Total))
	gap := inner - components.VisibleLen(prev) - components.VisibleLen(next) - components.VisibleLen(pos)
	controls := prev + strings.Repeat(" ", max(1, gap/2)) + pos + strings.Repeat(" ", max(1, gap-gap/2)) + next
	if v.Total <= 1 {
		controls = lipgloss.PlaceHorizontal(inner, lipgloss.Center, pos)
	}

	parts := []string{top, body, "", meta, st.ProgressBar(inner, v.Progress), controls}
	if v.Keys != nil {
		h := help.New()
		h.Styles = st.HelpStyles()
		h.Width = inner
		parts = append(parts, lipgloss.PlaceHorizontal(inner, lipgloss.Center, h.View(v.Keys)))
	}

	cardStyle := st.Viewer.BorderForeground(lipgloss.Color(theme.TagColor(st.Theme, v.Whisper.Color)))
	if v.Pending {
		cardStyle = cardStyle.Faint(true)
	}
	card := f.mark(ZoneViewerCard, cardStyle.Width(cardW-2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	card = slideOffset(card, v)

	return lipgloss.Place(f.Width, f.Height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(st.Theme.Backdrop)),
	)
}

// slideOffset nudges the card in the direction of a pending transition.
func slideOffset(card string, v ViewerState) string {
	if !v.Pending {
		return card
	}
	pad := lipgloss.NewStyle()
	switch v.Slide {
	case viewer.SlideLeft:
		pad = pad.PaddingRight(2 * slideShift)
	case viewer.SlideRight:
		pad = pad.PaddingLeft(2 * slideShift)
	default:
		return card
	}
	return pad.Render(card)
}
