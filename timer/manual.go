package timer

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Callbacks fire
// synchronously, on the goroutine calling Advance.
type Manual struct {
	mu sync.Mutex

	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	m *Manual

	at  time.Time
	seq int
	fn  func()

	done bool
}

// NewManual creates a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the scheduler's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(d), seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)

	return t
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pending)
}

// Advance moves the clock forward by d, firing every timer that comes due in
// deadline order. Timers scheduled by those callbacks fire too if they are due
// before the new time.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		t := m.next(target)
		if t == nil {
			break
		}

		t.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// next pops the earliest timer due at or before target and moves the clock to it.
func (m *Manual) next(target time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		return nil
	}

	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.at.Equal(b.at) {
			return a.seq < b.seq
		}
		return a.at.Before(b.at)
	})

	t := m.pending[0]
	if t.at.After(target) {
		return nil
	}

	m.pending = m.pending[1:]
	t.done = true
	if t.at.After(m.now) {
		m.now = t.at
	}

	return t
}

func (t *manualTimer) Stop() bool {
	m := t.m

	m.mu.Lock()
	defer m.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true

	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			break
		}
	}

	return true
}
