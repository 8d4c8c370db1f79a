package components

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RingSegments is how many dots make up the countdown ring.
const RingSegments = 12

// RingOffset returns how much of a ring of the given circumference has been
// consumed at progress percent: 0 leaves the ring full, 100 empties it.
// Progress outside [0, 100] is clamped.
func RingOffset(progress, circumference float64) float64 {
	progress = math.Max(0, math.Min(100, progress))
	return circumference * progress / 100
}

// ConsumedSegments returns how many of n segments are spent at progress.
func ConsumedSegments(progress float64, n int) int {
	return int(math.Floor(RingOffset(progress, float64(n))))
}

// ringCells places the twelve segments on a 9x5 grid, clockwise from the
// top, approximating an ellipse at terminal cell aspect ratio.
var ringCells = [RingSegments][2]int{
	{4, 0}, {6, 0}, {7, 1}, {8, 2}, {7, 3}, {6, 4},
	{4, 4}, {2, 4}, {1, 3}, {0, 2}, {1, 1}, {2, 0},
}

const (
	ringWidth  = 9
	ringHeight = 5
)

// RingStyle colours the countdown ring.
type RingStyle struct {
	Remaining lipgloss.Style
	Consumed  lipgloss.Style
	Label     lipgloss.Style
}

// Ring renders a five-line countdown ring with the remaining time in the
// middle. Segments drain clockwise from twelve o'clock.
func Ring(progress float64, remaining time.Duration, st RingStyle) string {
	consumed := ConsumedSegments(progress, RingSegments)

	grid := make([][]string, ringHeight)
	for y := range grid {
		grid[y] = make([]string, ringWidth)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for i, c := range ringCells {
		if i < consumed {
			grid[c[1]][c[0]] = st.Consumed.Render("·")
		} else {
			grid[c[1]][c[0]] = st.Remaining.Render("●")
		}
	}

	label := PadCenter(RemainingLabel(remaining), 5)
	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		if y == ringHeight/2 {
			b.WriteString(row[0])
			b.WriteString(" ")
			b.WriteString(st.Label.Render(label))
			b.WriteString(" ")
			b.WriteString(row[ringWidth-1])
			continue
		}
		b.WriteString(strings.Join(row, ""))
	}
	return b.String()
}

// InlineRing renders the ring as a single line of segments, for narrow
// layouts and the status bar.
func InlineRing(progress float64, st RingStyle) string {
	consumed := ConsumedSegments(progress, RingSegments)
	return st.Consumed.Render(strings.Repeat("·", consumed)) +
		st.Remaining.Render(strings.Repeat("●", RingSegments-consumed))
}

// RemainingLabel formats a countdown as whole seconds, rounding up so the
// label never reads 0s while time is left.
func RemainingLabel(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return fmt.Sprintf("%ds", int(math.Ceil(d.Seconds())))
}
