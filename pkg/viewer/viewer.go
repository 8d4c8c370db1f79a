package viewer

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// Model is the whisper viewer. The zero value is not usable; construct one
// with New.
type Model struct {
	id     int
	cfg    Config
	store  *whisper.Store
	keys   KeyMap
	rand   *rand.Rand
	logger *slog.Logger

	sel       selection
	rot       rotation
	commitTag int
	pending   string
	rotations int
}

// Option configures a Model.
type Option func(*Model)

// WithRand sets the random source used for random navigation.
func WithRand(r *rand.Rand) Option {
	return func(m *Model) { m.rand = r }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithKeyMap overrides the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// New creates a closed viewer over store.
func New(cfg Config, store *whisper.Store, opts ...Option) Model {
	now := uint64(time.Now().UnixNano())
	m := Model{
		id:     nextID(),
		cfg:    cfg.normalized(),
		store:  store,
		keys:   DefaultKeyMap(),
		rand:   rand.New(rand.NewPCG(now, now>>1)),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Open shows the whisper with the given id without a slide transition. An
// id that does not resolve in the store leaves the viewer closed.
func (m *Model) Open(id string) tea.Cmd {
	m.commitTag++
	m.pending = ""
	if _, ok := m.store.FindByID(id); !ok {
		m.logger.Debug("open ignored, unknown whisper", "id", id)
		m.Close()
		return nil
	}

	m.sel.open(id)
	m.rot.restart()
	return m.ensureRotation()
}

// Close hides the viewer, cancels the rotation timer and drops any pending
// transition.
func (m *Model) Close() {
	m.sel.close()
	m.commitTag++
	m.pending = ""
	if m.rot.running {
		m.rot.stop()
	}
	m.rot.restart()
}

// Navigate starts a slide towards the whisper selected by d. It is a no-op
// when nothing is open or the store holds fewer than two whispers. The
// returned command delivers the CommitMsg after the transition delay; a
// later Navigate, Open or Close supersedes it.
func (m *Model) Navigate(d Direction) tea.Cmd {
	if m.sel.expandedID == "" {
		return nil
	}
	i, ok := m.store.IndexOf(m.sel.expandedID)
	if !ok {
		m.logger.Debug("selected whisper vanished, closing", "id", m.sel.expandedID)
		m.Close()
		return nil
	}
	n := m.store.Size()
	if n <= 1 {
		return nil
	}

	target := m.store.At(m.targetIndex(d, i, n)).ID
	m.sel.beginTransition(d)
	m.commitTag++
	m.pending = target
	m.logger.Debug("navigate", "direction", d, "from", m.sel.expandedID, "to", target)

	id, tag := m.id, m.commitTag
	return tea.Tick(m.cfg.Transition, func(time.Time) tea.Msg {
		return CommitMsg{ID: id, Tag: tag, Target: target}
	})
}

func (m *Model) handleCommit(msg CommitMsg) tea.Cmd {
	if msg.ID != m.id || msg.Tag != m.commitTag {
		return nil
	}
	m.pending = ""
	if _, ok := m.store.FindByID(msg.Target); !ok {
		m.logger.Debug("transition target vanished, closing", "id", msg.Target)
		m.Close()
		return nil
	}

	m.sel.commitTransition(msg.Target)
	m.rot.restart()
	return m.ensureRotation()
}

// ReplaceStore swaps in a new snapshot. A selection that no longer resolves
// closes the viewer; the rotation timer follows the new store size.
func (m *Model) ReplaceStore(s *whisper.Store) tea.Cmd {
	m.store = s
	if m.sel.expandedID != "" {
		if _, ok := s.FindByID(m.sel.expandedID); !ok {
			m.logger.Debug("store replaced without selected whisper, closing", "id", m.sel.expandedID)
			m.Close()
			return nil
		}
	}
	return m.ensureRotation()
}

// Update handles viewer messages. Key messages are only interpreted while
// a whisper is open; see HandleKey.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TickMsg:
		return m.handleTick(msg)
	case CommitMsg:
		return m.handleCommit(msg)
	case tea.KeyMsg:
		cmd, _ := m.HandleKey(msg)
		return cmd
	}
	return nil
}

// HandleKey interprets msg against the open-viewer key map. It reports
// whether the key was consumed; nothing is consumed while closed.
func (m *Model) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !m.IsOpen() {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Close):
		m.Close()
		return nil, true
	case key.Matches(msg, m.keys.Prev):
		return m.Navigate(Prev), true
	case key.Matches(msg, m.keys.Next):
		return m.Navigate(Next), true
	}
	return nil, false
}

// IsOpen reports whether a whisper is selected and still resolves in the
// current store. A dangling selection reads as closed.
func (m Model) IsOpen() bool {
	_, ok := m.Current()
	return ok
}

// Current returns the visible whisper.
func (m Model) Current() (whisper.Whisper, bool) {
	if m.sel.expandedID == "" {
		return whisper.Whisper{}, false
	}
	return m.store.FindByID(m.sel.expandedID)
}

// Selection returns a snapshot of the selection state.
func (m Model) Selection() Selection {
	return Selection{
		ExpandedID: m.sel.expandedID,
		Slide:      m.sel.slide,
		Progress:   m.rot.progress(m.cfg.Dwell),
	}
}

// Progress returns the countdown progress in [0, 100).
func (m Model) Progress() float64 {
	return m.rot.progress(m.cfg.Dwell)
}

// Remaining returns the time left before the next automatic rotation.
func (m Model) Remaining() time.Duration {
	return m.cfg.Dwell - m.rot.elapsed
}

// Pending returns the target of an in-flight transition, or "".
func (m Model) Pending() string { return m.pending }

// Running reports whether the rotation timer is active.
func (m Model) Running() bool { return m.rot.running }

// Rotations returns how many times the dwell time has elapsed.
func (m Model) Rotations() int { return m.rotations }

// ID returns the instance identifier carried by this viewer's messages.
func (m Model) ID() int { return m.id }

// Store returns the current snapshot.
func (m Model) Store() *whisper.Store { return m.store }

// Config returns the normalized timing configuration.
func (m Model) Config() Config { return m.cfg }

// KeyMap returns the open-viewer bindings.
func (m Model) KeyMap() KeyMap { return m.keys }
