package theme

import (
	"strconv"

	"github.com/muesli/termenv"
)

// Adapt downsamples every hex colour in t to the nearest colour the
// terminal can show. A depth of 24 or more returns t unchanged; a depth of
// 1 strips colour entirely.
func Adapt(t Theme, colorDepth int) Theme {
	p := thProfileForDepth(colorDepth)
	if p == termenv.TrueColor {
		return t
	}

	for _, field := range []*string{
		&t.Background, &t.Foreground, &t.Dim, &t.Accent,
		&t.Border, &t.BorderFocus, &t.Title,
		&t.Backdrop, &t.RingFilled, &t.RingEmpty,
		&t.Error, &t.HelpKey, &t.HelpDesc,
	} {
		*field = thConvert(p, *field)
	}
	return t
}

// ColorDepth maps a termenv colour profile to bits per channel group.
func ColorDepth(p termenv.Profile) int {
	switch p {
	case termenv.TrueColor:
		return 24
	case termenv.ANSI256:
		return 8
	case termenv.ANSI:
		return 4
	default:
		return 1
	}
}

func thProfileForDepth(depth int) termenv.Profile {
	switch {
	case depth >= 24:
		return termenv.TrueColor
	case depth >= 8:
		return termenv.ANSI256
	case depth >= 4:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

// thConvert maps a "#rrggbb" colour to an ANSI index string that lipgloss
// accepts. Values that are not hex colours pass through.
func thConvert(p termenv.Profile, hex string) string {
	if !thHexColorRegex.MatchString(hex) {
		return hex
	}
	switch c := p.Convert(termenv.RGBColor(hex)).(type) {
	case termenv.ANSI256Color:
		return strconv.Itoa(int(c))
	case termenv.ANSIColor:
		return strconv.Itoa(int(c))
	case termenv.RGBColor:
		return string(c)
	default:
		return ""
	}
}
