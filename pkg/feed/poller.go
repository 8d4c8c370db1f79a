package feed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/whispers/pkg/cache"
)

// ErrAlreadyStarted is returned by Start on a running Poller.
var ErrAlreadyStarted = errors.New("feed: poller already started")

// Poller runs a Source and sends an Update after every fetch.
type Poller struct {
	src     Source
	updates chan<- Update
	cache   *cache.Store
	logger  *slog.Logger
	refresh chan struct{}

	mu      sync.Mutex
	status  Status
	cancel  context.CancelFunc
	started bool
	wg      sync.WaitGroup
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithCache persists every successful fetch to c.
func WithCache(c *cache.Store) PollerOption {
	return func(p *Poller) { p.cache = c }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPoller returns a stopped Poller that delivers to updates.
func NewPoller(src Source, updates chan<- Update, opts ...PollerOption) *Poller {
	p := &Poller{
		src:     src,
		updates: updates,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		refresh: make(chan struct{}, 1),
		status:  Status{Source: src.Name(), Healthy: true},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cached returns the snapshot saved by an earlier run, if any. The UI uses
// it to show whispers before the first live fetch lands.
func (p *Poller) Cached() (Update, bool) {
	if p.cache == nil {
		return Update{}, false
	}
	ws, saved, err := LoadSnapshot(p.cache, p.src.Name())
	if err != nil {
		return Update{}, false
	}
	return Update{Source: p.src.Name(), Whispers: ws, Timestamp: saved, Cached: true}, true
}

// Start fetches once immediately and then on every interval until ctx is
// cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(ctx)
	return nil
}

// Stop cancels polling and waits for the loop to exit. It is safe to call
// more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

// Refresh asks for an immediate fetch. Requests made while one is already
// queued are coalesced.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Status returns a copy of the runtime status.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	var tick <-chan time.Time
	if iv := p.src.Interval(); iv > 0 {
		t := time.NewTicker(iv)
		defer t.Stop()
		tick = t.C
	}

	p.fetch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			p.fetch(ctx)
		case <-p.refresh:
			p.fetch(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	start := time.Now()
	ws, err := p.src.Fetch(ctx)
	latency := time.Since(start)
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	p.status.LastRun = start
	p.status.LastLatency = latency
	p.status.RunCount++
	p.status.LastError = err
	p.status.Healthy = err == nil
	if err != nil {
		p.status.ErrorCount++
	}
	p.mu.Unlock()

	u := Update{Source: p.src.Name(), Timestamp: start, Error: err}
	if err != nil {
		p.logger.Warn("fetch failed", "source", p.src.Name(), "error", err)
	} else {
		u.Whispers = ws
		p.logger.Debug("fetched", "source", p.src.Name(), "count", len(ws), "latency", latency)
		if p.cache != nil {
			if cerr := SaveSnapshot(p.cache, p.src.Name(), ws); cerr != nil {
				p.logger.Warn("snapshot not saved", "error", cerr)
			}
		}
	}

	select {
	case p.updates <- u:
	case <-ctx.Done():
	}
}
