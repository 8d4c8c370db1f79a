// Package config provides TOML (or YAML) configuration for whispers.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
)

// Config is the root configuration document.
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Viewer  ViewerConfig  `toml:"viewer" yaml:"viewer"`
	Feed    FeedConfig    `toml:"feed" yaml:"feed"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	// Mode selects the dwell time preset: "development" or "production".
	Mode     string `toml:"mode" yaml:"mode"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`
}

// ViewerConfig overrides viewer timings. Zero values fall back to the mode
// preset and the package defaults.
type ViewerConfig struct {
	Dwell      Duration `toml:"dwell" yaml:"dwell"`
	Tick       Duration `toml:"tick" yaml:"tick"`
	Transition Duration `toml:"transition" yaml:"transition"`
}

// FeedConfig describes where whispers come from. File takes precedence over
// Endpoint when both are set.
type FeedConfig struct {
	Endpoint     string   `toml:"endpoint" yaml:"endpoint"`
	File         string   `toml:"file" yaml:"file"`
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"`
	Timeout      Duration `toml:"timeout" yaml:"timeout"`
	SnapshotTTL  Duration `toml:"snapshot_ttl" yaml:"snapshot_ttl"`
}

// ThemeConfig picks a built-in palette by name or loads one from a TOML file.
type ThemeConfig struct {
	Name string `toml:"name" yaml:"name"`
	File string `toml:"file" yaml:"file"`
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if _, err := viewer.DwellForMode(c.General.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.General.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Feed.File == "" {
		if c.Feed.Endpoint == "" {
			errs = append(errs, errors.New("config: feed.endpoint or feed.file is required"))
		} else if u, err := url.Parse(c.Feed.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("config: feed.endpoint %q is not an absolute URL", c.Feed.Endpoint))
		}
	}
	if c.Viewer.Tick.Duration > 0 && c.Viewer.Dwell.Duration > 0 && c.Viewer.Dwell.Duration < c.Viewer.Tick.Duration {
		errs = append(errs, fmt.Errorf("config: viewer.dwell %s is shorter than viewer.tick %s",
			c.Viewer.Dwell.Duration, c.Viewer.Tick.Duration))
	}

	return errors.Join(errs...)
}

// ViewerTiming resolves the viewer timings: the mode preset supplies the
// dwell time unless viewer.dwell overrides it.
func (c *Config) ViewerTiming() viewer.Config {
	vc := viewer.DefaultConfig()
	if d, err := viewer.DwellForMode(c.General.Mode); err == nil {
		vc.Dwell = d
	}
	if c.Viewer.Dwell.Duration > 0 {
		vc.Dwell = c.Viewer.Dwell.Duration
	}
	if c.Viewer.Tick.Duration > 0 {
		vc.Tick = c.Viewer.Tick.Duration
	}
	if c.Viewer.Transition.Duration > 0 {
		vc.Transition = c.Viewer.Transition.Duration
	}
	return vc
}

// Level returns the configured slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.General.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}
