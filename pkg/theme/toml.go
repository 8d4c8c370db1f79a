package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name    string        `toml:"name"`
	Base    thTOMLBase    `toml:"base"`
	Card    thTOMLCard    `toml:"card"`
	Viewer  thTOMLViewer  `toml:"viewer"`
	Special thTOMLSpecial `toml:"special"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLCard struct {
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`
}

type thTOMLViewer struct {
	Backdrop   string `toml:"backdrop"`
	RingFilled string `toml:"ring_filled"`
	RingEmpty  string `toml:"ring_empty"`
}

type thTOMLSpecial struct {
	Error    string `toml:"error"`
	HelpKey  string `toml:"help_key"`
	HelpDesc string `toml:"help_desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		Border:      tt.Card.Border,
		BorderFocus: tt.Card.BorderFocus,
		Title:       tt.Card.Title,

		Backdrop:   tt.Viewer.Backdrop,
		RingFilled: tt.Viewer.RingFilled,
		RingEmpty:  tt.Viewer.RingEmpty,

		Error:    tt.Special.Error,
		HelpKey:  tt.Special.HelpKey,
		HelpDesc: tt.Special.HelpDesc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}

	return t, nil
}

// LoadFile reads a TOML theme from path and registers it, so it can be
// selected by name afterwards.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return Theme{}, err
	}
	thRegister(t)
	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
		},
		Card: thTOMLCard{
			Border:      t.Border,
			BorderFocus: t.BorderFocus,
			Title:       t.Title,
		},
		Viewer: thTOMLViewer{
			Backdrop:   t.Backdrop,
			RingFilled: t.RingFilled,
			RingEmpty:  t.RingEmpty,
		},
		Special: thTOMLSpecial{
			Error:    t.Error,
			HelpKey:  t.HelpKey,
			HelpDesc: t.HelpDesc,
		},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thColorFields lists every colour field by its TOML key.
func thColorFields(t Theme) map[string]string {
	return map[string]string{
		"background":   t.Background,
		"foreground":   t.Foreground,
		"dim":          t.Dim,
		"accent":       t.Accent,
		"border":       t.Border,
		"border_focus": t.BorderFocus,
		"title":        t.Title,
		"backdrop":     t.Backdrop,
		"ring_filled":  t.RingFilled,
		"ring_empty":   t.RingEmpty,
		"error":        t.Error,
		"help_key":     t.HelpKey,
		"help_desc":    t.HelpDesc,
	}
}

// thValidateTheme checks that all required color fields are present and valid hex.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	for field, value := range thColorFields(t) {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}
	return nil
}
