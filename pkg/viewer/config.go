package viewer

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTick is the rotation tick interval.
	DefaultTick = 50 * time.Millisecond

	// DefaultTransition is how long the outward slide plays before the
	// next whisper is committed.
	DefaultTransition = 400 * time.Millisecond

	// DevelopmentDwell is the dwell time used in development and test builds
	// so rotation is observable without a long wait.
	DevelopmentDwell = 5 * time.Second

	// ProductionDwell is the dwell time used in production builds.
	ProductionDwell = 30 * time.Second
)

// Config holds the viewer timing parameters.
type Config struct {
	Dwell      time.Duration
	Tick       time.Duration
	Transition time.Duration
}

// DefaultConfig returns production timings.
func DefaultConfig() Config {
	return Config{
		Dwell:      ProductionDwell,
		Tick:       DefaultTick,
		Transition: DefaultTransition,
	}
}

// DwellForMode maps a build mode name to its dwell time.
// Recognised modes: "development" (alias "dev", "test") and "production"
// (alias "prod").
func DwellForMode(mode string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "development", "dev", "test":
		return DevelopmentDwell, nil
	case "production", "prod", "":
		return ProductionDwell, nil
	default:
		return 0, fmt.Errorf("viewer: unknown mode %q (want development or production)", mode)
	}
}

// normalized fills zero or negative fields with defaults. A dwell shorter
// than one tick is raised to one tick so every whisper gets at least one
// progress update.
func (c Config) normalized() Config {
	if c.Tick <= 0 {
		c.Tick = DefaultTick
	}
	if c.Transition <= 0 {
		c.Transition = DefaultTransition
	}
	if c.Dwell <= 0 {
		c.Dwell = ProductionDwell
	}
	if c.Dwell < c.Tick {
		c.Dwell = c.Tick
	}
	return c
}
