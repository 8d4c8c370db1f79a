package feed

import (
	"context"
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

var mockLines = []string{
	"the kettle is louder than the thought i was trying to have",
	"shipped it. now the quiet part.",
	"rain on the skylight, tests on the terminal",
	"every tab i close is a small act of courage",
	"the bug was a missing semicolon in my sleep schedule",
	"cold coffee, warm build cache",
	"wrote a todo list so long it needed pagination",
	"the cat has opinions about my keyboard layout",
	"leaving this here so future me finds it",
	"one more refactor and then bed. probably.",
}

var (
	mockIcons   = []string{"moon", "coffee", "leaf", "spark", "cloud", ""}
	mockColors  = []string{"violet", "sky", "emerald", "amber", "rose", ""}
	mockAuthors = []string{"jess", "tinyland", ""}
)

// MockSource generates demo whispers. Output is fully determined by the
// seed and the clock, so tests and -demo runs are reproducible.
type MockSource struct {
	interval time.Duration
	now      func() time.Time

	mu    sync.Mutex
	rng   *rand.Rand
	ids   *rand.ChaCha8
	items []whisper.Whisper
	grow  bool
}

// MockOption configures a MockSource.
type MockOption func(*MockSource)

// WithClock fixes the time new whispers are stamped relative to.
func WithClock(now func() time.Time) MockOption {
	return func(m *MockSource) { m.now = now }
}

// WithGrowth makes every Fetch after the first prepend one new whisper.
func WithGrowth() MockOption {
	return func(m *MockSource) { m.grow = true }
}

// NewMockSource returns a source that starts with count whispers.
func NewMockSource(seed uint64, count int, interval time.Duration, opts ...MockOption) *MockSource {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	ids := rand.NewChaCha8(key)
	m := &MockSource{
		interval: interval,
		now:      time.Now,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ids:      ids,
	}
	for _, opt := range opts {
		opt(m)
	}

	base := m.now()
	for i := range count {
		m.items = append(m.items, m.generate(base.Add(-time.Duration(i)*3*time.Hour)))
	}
	return m
}

// Name returns "mock".
func (m *MockSource) Name() string { return "mock" }

// Interval returns the configured interval.
func (m *MockSource) Interval() time.Duration { return m.interval }

// Fetch returns a copy of the current demo whispers.
func (m *MockSource) Fetch(ctx context.Context) ([]whisper.Whisper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]whisper.Whisper, len(m.items))
	copy(out, m.items)
	if m.grow {
		m.items = append([]whisper.Whisper{m.generate(m.now())}, m.items...)
	}
	return out, nil
}

func (m *MockSource) generate(at time.Time) whisper.Whisper {
	id, err := uuid.NewRandomFromReader(m.ids)
	if err != nil {
		id = uuid.New()
	}
	return whisper.Whisper{
		ID:         id.String(),
		Content:    mockLines[m.rng.IntN(len(mockLines))],
		Date:       at.UTC().Truncate(time.Second),
		Icon:       mockIcons[m.rng.IntN(len(mockIcons))],
		Color:      mockColors[m.rng.IntN(len(mockColors))],
		AuthorName: mockAuthors[m.rng.IntN(len(mockAuthors))],
	}
}
