package tui

import (
	"strings"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// renderSearchBar renders the filter input that replaces the status line
// while filtering: a "/" prefix, the query and a cursor.
func renderSearchBar(query string, width int, st Styles) string {
	if width <= 0 {
		return ""
	}
	display := st.Accent.Render("/") + st.Text.Render(query) + st.Dim.Render("_")
	return components.PadRight(components.Truncate(display, width), width)
}

// FilterWhispers returns the store positions of whispers whose content or
// author contains query, case-insensitively. An empty query matches all.
func FilterWhispers(s *whisper.Store, query string) []int {
	n := s.Size()
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]int, 0, n)
	for i := range n {
		w := s.At(i)
		if query == "" ||
			strings.Contains(strings.ToLower(w.Content), query) ||
			strings.Contains(strings.ToLower(w.AuthorName), query) {
			out = append(out, i)
		}
	}
	return out
}
