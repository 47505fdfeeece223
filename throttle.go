package sigstream

import (
	"log/slog"
	"sync"
	"time"

	"github.com/AnatoleLucet/sigstream/internal"
	"github.com/AnatoleLucet/sigstream/timer"
)

type throttleConfig struct {
	scheduler timer.Scheduler
	logger    *slog.Logger
	onFlush   []func(coalesced int)
}

// ThrottleOption configures a throttled signal.
type ThrottleOption func(*throttleConfig)

// WithScheduler sets the scheduler that times the throttle windows.
// Defaults to timer.Default.
func WithScheduler(s timer.Scheduler) ThrottleOption {
	return func(c *throttleConfig) {
		c.scheduler = s
	}
}

// WithLogger logs window flushes at debug level.
func WithLogger(l *slog.Logger) ThrottleOption {
	return func(c *throttleConfig) {
		c.logger = l
	}
}

// WithOnFlush calls fn after each window that propagated a value, with the
// number of values the window received.
func WithOnFlush(fn func(coalesced int)) ThrottleOption {
	return func(c *throttleConfig) {
		c.onFlush = append(c.onFlush, fn)
	}
}

// throttle coalesces values into fixed windows. It is idle until a value
// arrives, which arms a single timer; values received while armed replace the
// held value without touching the timer.
type throttle[T any] struct {
	hold[T]
	throttleConfig

	interval time.Duration

	// owner whose catchers receive panics raised by timer driven propagation
	owner *internal.Owner

	mu        sync.Mutex
	armed     bool
	propagate func(T)
	received  int

	// serializes timer callbacks
	fireMu sync.Mutex
}

func newThrottle[T any](interval time.Duration, opts ...ThrottleOption) *throttle[T] {
	t := &throttle[T]{
		throttleConfig: throttleConfig{
			scheduler: timer.Default,
			logger:    slog.New(slog.DiscardHandler),
		},
		interval: interval,
		owner:    internal.CurrentOwner(),
	}

	for _, opt := range opts {
		opt(&t.throttleConfig)
	}

	return t
}

func (t *throttle[T]) OnSubscribe(func(Emission[T])) {}

func (t *throttle[T]) OnEmit(v T, propagate func(T)) {
	t.mu.Lock()
	t.set(v)
	t.propagate = propagate
	t.received++

	arm := !t.armed
	t.armed = true
	t.mu.Unlock()

	// outside the lock, a scheduler may fire synchronously
	if arm {
		t.scheduler.AfterFunc(t.interval, t.fire)
	}
}

func (t *throttle[T]) fire() {
	t.fireMu.Lock()
	defer t.fireMu.Unlock()

	t.mu.Lock()
	v, ok := t.Latest()
	propagate := t.propagate
	coalesced := t.received
	t.received = 0
	// disarmed before propagating so a value emitted downstream can open a new window
	t.armed = false
	t.mu.Unlock()

	if !ok || propagate == nil {
		return
	}

	t.logger.Debug("throttle window flushed",
		"interval", t.interval,
		"coalesced", coalesced)

	t.owner.Catch(func() { propagate(v) })

	for _, fn := range t.onFlush {
		fn(coalesced)
	}
}

// NewThrottled creates a signal that propagates at most one value per
// interval: the latest one received during the window. Held values are
// reported by Signal.Latest.
func NewThrottled[T any](interval time.Duration, opts ...ThrottleOption) *Signal[T] {
	return NewWithPolicy[T](newThrottle[T](interval, opts...))
}

// Throttle returns a throttled signal fed by s.
func (s *Signal[T]) Throttle(interval time.Duration, opts ...ThrottleOption) *Signal[T] {
	throttled := NewThrottled[T](interval, opts...)
	s.Pipe(throttled)

	return throttled
}
