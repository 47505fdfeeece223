package sigstream

// Map returns a signal emitting f(x) for every x emitted by s.
func Map[T, U any](s *Signal[T], f func(T) U) *Signal[U] {
	out := New[U]()
	s.Subscribe(func(x T) {
		out.Emit(f(x))
	})

	return out
}

// Filter returns a signal emitting the values of s that satisfy predicate.
func (s *Signal[T]) Filter(predicate func(T) bool) *Signal[T] {
	out := New[T]()
	s.Subscribe(func(x T) {
		if predicate(x) {
			out.Emit(x)
		}
	})

	return out
}

// Map is the same-type form of the Map function, usable in method chains.
func (s *Signal[T]) Map(f func(T) T) *Signal[T] {
	return Map(s, f)
}

// Reduce returns a holding signal seeded with initial that emits
// combine(held, x) for every x emitted by s, where held is the returned
// signal's latest value. Values emitted directly into it are folded over too.
// combine must not read the returned signal.
func Reduce[T, U any](s *Signal[T], initial U, combine func(U, T) U) *Signal[U] {
	p := &holding[U]{}
	p.set(initial)
	out := NewWithPolicy[U](p)

	s.Subscribe(func(x T) {
		out.broadcast(p.update(func(held U) U { return combine(held, x) }))
	})

	return out
}

// Reduce is the same-type form of the Reduce function, usable in method chains.
func (s *Signal[T]) Reduce(initial T, combine func(T, T) T) *Signal[T] {
	return Reduce(s, initial, combine)
}
