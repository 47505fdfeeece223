package sigstream

import "sync"

type hold[T any] struct {
	mu    sync.Mutex
	value T
	ok    bool
}

func (h *hold[T]) set(v T) {
	h.mu.Lock()
	h.value, h.ok = v, true
	h.mu.Unlock()
}

// update replaces the held value with f(held) in one step and returns it.
func (h *hold[T]) update(f func(T) T) T {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.value, h.ok = f(h.value), true
	return h.value
}

func (h *hold[T]) Latest() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.value, h.ok
}

type holding[T any] struct {
	hold[T]
}

func (h *holding[T]) OnSubscribe(func(Emission[T])) {}

func (h *holding[T]) OnEmit(v T, propagate func(T)) {
	h.set(v)
	propagate(v)
}

// NewHolding creates a signal that remembers its last value, see Signal.Latest.
func NewHolding[T any]() *Signal[T] {
	return NewWithPolicy[T](&holding[T]{})
}

// NewHoldingFrom creates a holding signal seeded with initial.
func NewHoldingFrom[T any](initial T) *Signal[T] {
	p := &holding[T]{}
	p.set(initial)

	return NewWithPolicy[T](p)
}

type sequence[T any] struct {
	items []T
}

// replayed emissions carry the zero time
func (s *sequence[T]) OnSubscribe(deliver func(Emission[T])) {
	for _, item := range s.items {
		deliver(Emission[T]{Value: item})
	}
}

func (s *sequence[T]) OnEmit(v T, propagate func(T)) {
	propagate(v)
}

// NewSequence creates a signal that replays items, in order, to every new
// subscriber before registering it. Values emitted later reach only the
// subscribers registered at that time.
func NewSequence[T any](items ...T) *Signal[T] {
	return NewWithPolicy[T](&sequence[T]{items: append([]T(nil), items...)})
}
