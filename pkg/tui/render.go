package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/theme"
	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// Zone identifiers for mouse hit testing.
const (
	ZoneViewerCard  = "viewer-card"
	ZoneViewerClose = "viewer-close"
	ZoneViewerPrev  = "viewer-prev"
	ZoneViewerNext  = "viewer-next"
)

// CardZone returns the zone id of a list card.
func CardZone(id string) string { return "card-" + id }

// Status is the left side of the status bar.
type Status struct {
	Text  string
	Error bool
}

// ViewerState describes the open whisper. A zero value renders nothing.
type ViewerState struct {
	Open      bool
	Whisper   whisper.Whisper
	Slide     viewer.Slide
	Pending   bool
	Progress  float64
	Remaining time.Duration
	Position  int // 1-based
	Total     int
	Keys      help.KeyMap
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Width, Height int
	Styles        Styles
	Title         string
	Whispers      []whisper.Whisper
	Focused       int
	Searching     bool
	Query         string
	ShowHelp      bool
	Help          help.Model
	Keys          help.KeyMap
	Status        Status
	Viewer        ViewerState
	Now           time.Time

	// Mark wraps a region for mouse hit testing. Nil leaves output as is.
	Mark func(id, s string) string
}

func (f Frame) mark(id, s string) string {
	if f.Mark == nil {
		return s
	}
	return f.Mark(id, s)
}

// Render draws f. While a whisper is open the overlay replaces the list.
func Render(f Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	if f.Viewer.Open {
		return renderOverlay(f)
	}

	header := renderHeader(f)
	footer := renderFooter(f)
	bodyH := f.Height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 1 {
		bodyH = 1
	}
	body := lipgloss.NewStyle().Height(bodyH).MaxHeight(bodyH).Render(renderGrid(f, bodyH))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func renderHeader(f Frame) string {
	st := f.Styles
	title := f.Title
	if title == "" {
		title = "whispers"
	}
	left := st.Accent.Render(title) + st.Dim.Render(fmt.Sprintf(" · %d", len(f.Whispers)))
	if f.Query != "" {
		left += st.Dim.Render(" matching ") + st.Text.Render(f.Query)
	}
	return components.PadRight(components.Truncate(left, f.Width), f.Width)
}

func renderFooter(f Frame) string {
	st := f.Styles
	h := f.Help
	h.Width = f.Width
	h.Styles = st.HelpStyles()
	if f.ShowHelp && f.Keys != nil {
		h.ShowAll = true
		return lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color(st.Theme.Border)).
			Width(f.Width).
			Render(h.View(f.Keys))
	}
	if f.Searching {
		return renderSearchBar(f.Query, f.Width, st)
	}
	return renderStatusBar(f, h)
}

func renderStatusBar(f Frame, h help.Model) string {
	st := f.Styles
	left := st.Dim.Render(f.Status.Text)
	if f.Status.Error {
		left = st.Error.Render(f.Status.Text)
	}
	right := ""
	if f.Keys != nil {
		h.ShowAll = false
		right = h.View(f.Keys)
	}
	gap := f.Width - components.VisibleLen(left) - components.VisibleLen(right)
	if gap < 1 {
		return components.PadRight(components.Truncate(left, f.Width), f.Width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderGrid(f Frame, height int) string {
	st := f.Styles
	if len(f.Whispers) == 0 {
		msg := "No whispers yet."
		if f.Query != "" {
			msg = fmt.Sprintf("No whispers match %q.", f.Query)
		}
		return lipgloss.Place(f.Width, height, lipgloss.Center, lipgloss.Center, st.Dim.Render(msg))
	}

	cols := Columns(f.Width)
	cw := cardWidth(f.Width, cols)
	totalRows := (len(f.Whispers) + cols - 1) / cols
	start := firstRow(f.Focused/cols, totalRows, height/cardHeight)

	var rows []string
	for r := start; r < totalRows && len(rows)*cardHeight < height; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(f.Whispers) {
				break
			}
			if c > 0 {
				cards = append(cards, strings.Repeat(" ", columnGap))
			}
			w := f.Whispers[i]
			cards = append(cards, f.mark(CardZone(w.ID), renderCard(w, cw, i == f.Focused, st, f.Now)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard draws one list card exactly width cells wide.
func renderCard(w whisper.Whisper, width int, focused bool, st Styles, now time.Time) string {
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	lines := components.Clamp(w.Content, inner, cardLines)
	for len(lines) < cardLines {
		lines = append(lines, "")
	}

	body := st.Text.Render(strings.Join(lines, "\n")) + "\n" +
		st.Dim.Render(components.Truncate(metaLine(w, now), inner))

	style := st.Card.BorderForeground(lipgloss.Color(theme.TagColor(st.Theme, w.Color)))
	if focused {
		style = st.CardFocused
	}
	return style.Width(width - 2).Render(body)
}

// metaLine is the icon, author and relative date under a whisper.
func metaLine(w whisper.Whisper, now time.Time) string {
	var parts []string
	if w.AuthorName != "" {
		parts = append(parts, w.AuthorName)
	}
	if !w.Date.IsZero() {
		parts = append(parts, components.RelativeTime(w.Date, now))
	}
	return strings.TrimSpace(Icon(w.Icon) + " " + strings.Join(parts, " · "))
}
