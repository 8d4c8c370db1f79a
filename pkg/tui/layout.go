package tui

const (
	cardMinWidth = 28
	maxColumns   = 4
	columnGap    = 1

	// cardLines is how many content lines a list card shows.
	cardLines = 3
	// cardHeight is cardLines plus the meta line and the border.
	cardHeight = cardLines + 1 + 2
)

// Columns returns how many cards fit side by side in width.
func Columns(width int) int {
	cols := (width + columnGap) / (cardMinWidth + columnGap)
	switch {
	case cols < 1:
		return 1
	case cols > maxColumns:
		return maxColumns
	}
	return cols
}

// cardWidth returns the width of each card when cols share width.
func cardWidth(width, cols int) int {
	w := (width - (cols-1)*columnGap) / cols
	if w < 8 {
		return 8
	}
	return w
}

// firstRow returns the first card row to draw so that focusedRow stays in
// a window of fit rows.
func firstRow(focusedRow, totalRows, fit int) int {
	if fit < 1 {
		fit = 1
	}
	start := focusedRow - fit + 1
	if start < 0 {
		start = 0
	}
	if last := totalRows - fit; start > last && last >= 0 {
		start = last
	}
	return start
}
