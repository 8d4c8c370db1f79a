// Package theme holds the named colour palettes used to draw the whisper
// list and viewer. Palettes are registered by name; users can add their own
// from TOML files.
package theme

import (
	"sort"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Theme defines the complete color palette.
type Theme struct {
	Name string

	// Base colors
	Background string // hex color e.g. "#1a1b26"
	Foreground string
	Dim        string // dates, author names, hints
	Accent     string // highlights and the default whisper tag colour

	// Card colors
	Border      string // unfocused card borders
	BorderFocus string // focused card and open viewer border
	Title       string

	// Viewer overlay
	Backdrop   string // shaded area around the open card
	RingFilled string // countdown arc still remaining
	RingEmpty  string // countdown arc already consumed

	// Special
	Error    string
	HelpKey  string // keybinding highlight color
	HelpDesc string // help description color
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// Get returns a named theme, falling back to default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Lookup returns a named theme and whether it exists.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a theme under its lowercase name.
func Register(t Theme) error {
	if err := thValidateTheme(t); err != nil {
		return err
	}
	thRegister(t)
	return nil
}

// Resolve maps a configured theme name to a palette. The name "auto"
// picks default or light depending on the terminal background.
func Resolve(name string) Theme {
	if strings.EqualFold(name, "auto") || name == "" {
		return ForBackground(termenv.HasDarkBackground())
	}
	return Get(name)
}

// ForBackground returns default for dark terminals and light otherwise.
func ForBackground(dark bool) Theme {
	if dark {
		return Get("default")
	}
	return Get("light")
}

// thRegister adds a theme to the registry under its lowercase name.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
