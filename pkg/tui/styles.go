// Package tui renders the whisper list and the open-whisper overlay. It is
// stateless: callers describe one frame and get back the string to draw.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/theme"
)

// Styles are the lipgloss styles derived from one theme.
type Styles struct {
	Theme theme.Theme

	Card        lipgloss.Style
	CardFocused lipgloss.Style
	Viewer      lipgloss.Style
	Title       lipgloss.Style
	Text        lipgloss.Style
	Dim         lipgloss.Style
	Accent      lipgloss.Style
	Error       lipgloss.Style
	Control     lipgloss.Style
	Ring        components.RingStyle
}

// NewStyles builds the styles for t.
func NewStyles(t theme.Theme) Styles {
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }
	return Styles{
		Theme: t,
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Border)).
			Padding(0, 1),
		CardFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(c(t.BorderFocus)).
			Padding(0, 1),
		Viewer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.BorderFocus)).
			Padding(0, 2),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(c(t.Title)),
		Text:    lipgloss.NewStyle().Foreground(c(t.Foreground)),
		Dim:     lipgloss.NewStyle().Foreground(c(t.Dim)),
		Accent:  lipgloss.NewStyle().Bold(true).Foreground(c(t.Accent)),
		Error:   lipgloss.NewStyle().Foreground(c(t.Error)),
		Control: lipgloss.NewStyle().Foreground(c(t.HelpKey)),
		Ring: components.RingStyle{
			Remaining: lipgloss.NewStyle().Foreground(c(t.RingFilled)),
			Consumed:  lipgloss.NewStyle().Foreground(c(t.RingEmpty)),
			Label:     lipgloss.NewStyle().Foreground(c(t.Foreground)),
		},
	}
}

// HelpStyles returns bubbles/help styles matching the theme.
func (s Styles) HelpStyles() help.Styles {
	key := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.HelpKey))
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.HelpDesc))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Theme.Border))
	return help.Styles{
		Ellipsis:       sep,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: sep,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  sep,
	}
}

// ProgressBar returns a static countdown bar of the given width.
func (s Styles) ProgressBar(width int, pct float64) string {
	remaining, consumed := theme.RingColors(s.Theme, pct)
	bar := progress.New(
		progress.WithSolidFill(remaining),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = consumed
	// The bar drains as the countdown runs.
	return bar.ViewAs(1 - pct/100)
}
