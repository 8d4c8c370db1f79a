package app

import (
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/theme"
	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
)

// Config holds the settings the root model needs.
type Config struct {
	// RefreshInterval is how often relative dates are redrawn.
	RefreshInterval time.Duration

	Viewer viewer.Config
	Theme  theme.Theme
	Title  string
}

// DefaultConfig returns production timings and the default theme.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 30 * time.Second,
		Viewer:          viewer.DefaultConfig(),
		Theme:           theme.Get("default"),
		Title:           "whispers",
	}
}
