package viewer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// rotation is the auto-advance countdown. It is either idle or running a
// single self-rescheduling tick chain identified by tag. Elapsed time is
// kept as a duration rather than a float percentage so that exactly
// dwell/tick ticks reach the rollover.
type rotation struct {
	running bool
	tag     int
	elapsed time.Duration
}

// progress returns the elapsed share of dwell as a percentage.
func (r *rotation) progress(dwell time.Duration) float64 {
	if dwell <= 0 {
		return 0
	}
	return float64(r.elapsed) * 100 / float64(dwell)
}

// restart zeroes the countdown without touching the tick chain.
func (r *rotation) restart() {
	r.elapsed = 0
}

// start begins a new tick chain and returns its generation tag.
func (r *rotation) start() int {
	r.running = true
	r.tag++
	r.elapsed = 0
	return r.tag
}

// stop invalidates the current tick chain. Any tick already in flight
// carries the old tag and is dropped on arrival.
func (r *rotation) stop() {
	r.running = false
	r.tag++
	r.elapsed = 0
}

// advance adds one tick and reports whether the dwell time was reached,
// in which case the countdown is reset.
func (r *rotation) advance(tick, dwell time.Duration) bool {
	r.elapsed += tick
	if r.elapsed >= dwell {
		r.elapsed = 0
		return true
	}
	return false
}

// tickCmd schedules the next tick for the current chain.
func (m *Model) tickCmd() tea.Cmd {
	id, tag := m.id, m.rot.tag
	return tea.Tick(m.cfg.Tick, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Tag: tag, Time: t}
	})
}

// ensureRotation moves the timer between idle and running to match the
// current selection and store size. It returns the first tick command when
// the timer starts.
func (m *Model) ensureRotation() tea.Cmd {
	eligible := m.sel.expandedID != "" && m.store.Size() > 1
	switch {
	case eligible && !m.rot.running:
		m.rot.start()
		return m.tickCmd()
	case !eligible && m.rot.running:
		m.rot.stop()
	}
	return nil
}

// handleTick processes one tick of the current chain.
func (m *Model) handleTick(msg TickMsg) tea.Cmd {
	if msg.ID != m.id || msg.Tag != m.rot.tag || !m.rot.running {
		return nil
	}
	if !m.IsOpen() {
		m.Close()
		return nil
	}
	if m.store.Size() <= 1 {
		m.rot.stop()
		return nil
	}

	next := m.tickCmd()
	if !m.rot.advance(m.cfg.Tick, m.cfg.Dwell) {
		return next
	}

	m.rotations++
	m.logger.Debug("dwell elapsed, rotating", "from", m.sel.expandedID)
	return tea.Batch(next, m.Navigate(Random))
}
