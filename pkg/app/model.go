package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/whispers/pkg/components"
	"gitlab.com/tinyland/lab/whispers/pkg/feed"
	"gitlab.com/tinyland/lab/whispers/pkg/theme"
	"gitlab.com/tinyland/lab/whispers/pkg/tui"
	"gitlab.com/tinyland/lab/whispers/pkg/viewer"
	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// FeedState is what the status bar knows about the feed.
type FeedState struct {
	Source  string
	Updated time.Time
	Cached  bool
	Err     error
}

// AppModel is the root Bubbletea model.
type AppModel struct {
	cfg    Config
	keys   KeyMap
	styles tui.Styles
	help   help.Model
	logger *slog.Logger
	zones  *zone.Manager
	now    func() time.Time

	store   *whisper.Store
	viewer  viewer.Model
	visible []int // store positions shown in the list
	focused int   // index into visible

	searching bool
	query     string
	showHelp  bool

	feed    FeedState
	updates <-chan feed.Update
	refresh func()

	width    int
	height   int
	ready    bool
	quitting bool

	viewerOpts []viewer.Option
	initial    *feed.Update
}

// Option configures an AppModel.
type Option func(*AppModel)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(m *AppModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithUpdates subscribes the model to a feed update channel.
func WithUpdates(ch <-chan feed.Update) Option {
	return func(m *AppModel) { m.updates = ch }
}

// WithRefresh sets the function the refresh key calls.
func WithRefresh(fn func()) Option {
	return func(m *AppModel) { m.refresh = fn }
}

// WithInitial seeds the list, usually with a cached snapshot.
func WithInitial(u feed.Update) Option {
	return func(m *AppModel) { m.initial = &u }
}

// WithClock overrides the clock used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(m *AppModel) { m.now = now }
}

// WithViewerOptions passes options through to the viewer.
func WithViewerOptions(opts ...viewer.Option) Option {
	return func(m *AppModel) { m.viewerOpts = append(m.viewerOpts, opts...) }
}

// NewAppModel returns a model over an empty store.
func NewAppModel(cfg Config, opts ...Option) AppModel {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = theme.Get("default")
	}
	m := AppModel{
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		styles: tui.NewStyles(cfg.Theme),
		help:   help.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		zones:  zone.New(),
		now:    time.Now,
		store:  whisper.MustStore(),
	}

	for _, opt := range opts {
		opt(&m)
	}
	m.viewer = viewer.New(cfg.Viewer, m.store,
		append([]viewer.Option{viewer.WithLogger(m.logger)}, m.viewerOpts...)...)
	m.refilter("")
	if m.initial != nil {
		m.applyUpdate(*m.initial)
		m.initial = nil
	}
	return m
}

// Init starts the clock tick and the feed subscription.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(TickCmd(m.cfg.RefreshInterval), WaitForUpdate(m.updates))
}

// Close releases the mouse zone manager.
func (m AppModel) Close() {
	m.zones.Close()
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case TickEvent:
		return m, TickCmd(m.cfg.RefreshInterval)

	case FeedUpdateEvent:
		cmd := m.applyUpdate(msg.Update)
		return m, tea.Batch(cmd, WaitForUpdate(m.updates))

	case ThemeChangeEvent:
		m.setTheme(msg.Theme)
		return m, nil

	case viewer.TickMsg, viewer.CommitMsg:
		cmd := m.viewer.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	// The open viewer owns the keyboard; list bindings are suspended.
	if m.viewer.IsOpen() {
		cmd := m.withViewer(func() tea.Cmd {
			cmd, _ := m.viewer.HandleKey(msg)
			return cmd
		})
		return m, cmd
	}

	if m.searching {
		cmd := m.handleSearchKey(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case m.showHelp && msg.Type == tea.KeyEsc:
		m.showHelp = false
	case key.Matches(msg, m.keys.Search):
		m.searching = true
	case key.Matches(msg, m.keys.Clear):
		if m.query != "" {
			m.refilter("")
		}
	case key.Matches(msg, m.keys.Next):
		m.CycleFocusForward()
	case key.Matches(msg, m.keys.Prev):
		m.CycleFocusBackward()
	case key.Matches(msg, m.keys.Down):
		m.MoveFocusRows(1)
	case key.Matches(msg, m.keys.Up):
		m.MoveFocusRows(-1)
	case key.Matches(msg, m.keys.Open):
		cmd := m.OpenFocused()
		return m, cmd
	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil {
			m.logger.Debug("manual refresh")
			m.refresh()
		}
	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
	}
	return m, nil
}

// withViewer runs fn against the open viewer and, if that closes it, moves
// list focus to the whisper that was last on screen.
func (m *AppModel) withViewer(fn func() tea.Cmd) tea.Cmd {
	last, _ := m.viewer.Current()
	cmd := fn()
	if !m.viewer.IsOpen() {
		m.FocusWhisper(last.ID)
	}
	return cmd
}

func (m *AppModel) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.refilter("")
	case tea.KeyEnter:
		m.searching = false
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.refilter(string(r[:len(r)-1]))
		}
	case tea.KeySpace:
		m.refilter(m.query + " ")
	case tea.KeyRunes:
		m.refilter(m.query + string(msg.Runes))
	}
	return nil
}

// applyUpdate folds a feed result into the model. Failed fetches keep the
// current snapshot.
func (m *AppModel) applyUpdate(u feed.Update) tea.Cmd {
	m.feed.Source = u.Source
	if u.Error != nil {
		m.feed.Err = u.Error
		m.logger.Warn("feed update failed", "source", u.Source, "error", u.Error)
		return nil
	}
	s, err := whisper.NewStore(u.Whispers)
	if err != nil {
		m.feed.Err = fmt.Errorf("app: rejected snapshot: %w", err)
		m.logger.Warn("feed snapshot rejected", "source", u.Source, "error", err)
		return nil
	}

	focusedID := m.FocusedID()
	m.store = s
	m.feed.Err = nil
	m.feed.Updated = u.Timestamp
	m.feed.Cached = u.Cached
	m.refilter(m.query)
	m.FocusWhisper(focusedID)
	m.logger.Debug("snapshot replaced", "source", u.Source, "count", s.Size(), "cached", u.Cached)
	return m.viewer.ReplaceStore(s)
}

func (m *AppModel) refilter(query string) {
	m.query = query
	m.visible = tui.FilterWhispers(m.store, query)
	if m.focused >= len(m.visible) {
		m.focused = max(0, len(m.visible)-1)
	}
}

func (m *AppModel) setTheme(name string) {
	t, ok := theme.Lookup(name)
	if !ok {
		m.logger.Warn("unknown theme", "name", name)
		return
	}
	m.cfg.Theme = t
	m.styles = tui.NewStyles(t)
}

func (m *AppModel) cycleTheme() {
	names := theme.Names()
	if len(names) == 0 {
		return
	}
	i := 0
	for j, n := range names {
		if n == m.cfg.Theme.Name {
			i = j
			break
		}
	}
	m.setTheme(names[viewer.NextIndex(i, len(names))])
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	return m.zones.Scan(tui.Render(m.frame()))
}

func (m AppModel) frame() tui.Frame {
	ws := make([]whisper.Whisper, len(m.visible))
	for i, pos := range m.visible {
		ws[i] = m.store.At(pos)
	}
	return tui.Frame{
		Width:     m.width,
		Height:    m.height,
		Styles:    m.styles,
		Title:     m.cfg.Title,
		Whispers:  ws,
		Focused:   m.focused,
		Searching: m.searching,
		Query:     m.query,
		ShowHelp:  m.showHelp,
		Help:      m.help,
		Keys:      m.keys,
		Status:    m.status(),
		Viewer:    m.viewerState(),
		Now:       m.now(),
		Mark:      m.zones.Mark,
	}
}

// viewerState describes the open whisper. A dangling selection reads as
// closed.
func (m AppModel) viewerState() tui.ViewerState {
	w, ok := m.viewer.Current()
	if !ok {
		return tui.ViewerState{}
	}
	pos, _ := m.store.IndexOf(w.ID)
	sel := m.viewer.Selection()
	return tui.ViewerState{
		Open:      true,
		Whisper:   w,
		Slide:     sel.Slide,
		Pending:   m.viewer.Pending() != "",
		Progress:  sel.Progress,
		Remaining: m.viewer.Remaining(),
		Position:  pos + 1,
		Total:     m.store.Size(),
		Keys:      m.viewer.KeyMap(),
	}
}

func (m AppModel) status() tui.Status {
	switch {
	case m.feed.Err != nil && m.feed.Updated.IsZero():
		return tui.Status{Text: "feed unavailable: " + m.feed.Err.Error(), Error: true}
	case m.feed.Err != nil:
		return tui.Status{Text: "offline, showing " + components.RelativeTime(m.feed.Updated, m.now()), Error: true}
	case m.feed.Updated.IsZero():
		return tui.Status{Text: "loading..."}
	case m.feed.Cached:
		return tui.Status{Text: "cached " + components.RelativeTime(m.feed.Updated, m.now())}
	}
	return tui.Status{Text: "updated " + components.RelativeTime(m.feed.Updated, m.now())}
}

// Width returns the terminal width.
func (m AppModel) Width() int { return m.width }

// Height returns the terminal height.
func (m AppModel) Height() int { return m.height }

// Quitting reports whether the model asked to quit.
func (m AppModel) Quitting() bool { return m.quitting }

// HelpVisible reports whether the full help is shown.
func (m AppModel) HelpVisible() bool { return m.showHelp }

// Searching reports whether the filter input is active.
func (m AppModel) Searching() bool { return m.searching }

// Query returns the list filter.
func (m AppModel) Query() string { return m.query }

// Store returns the current snapshot.
func (m AppModel) Store() *whisper.Store { return m.store }

// Viewer returns the viewer state.
func (m AppModel) Viewer() viewer.Model { return m.viewer }

// Feed returns what is known about the feed.
func (m AppModel) Feed() FeedState { return m.feed }

// ThemeName returns the active theme name.
func (m AppModel) ThemeName() string { return m.cfg.Theme.Name }
