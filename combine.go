package sigstream

import (
	"fmt"
	"sync"
)

// joinState holds the latest value of each side of a Join.
type joinState[L, R any] struct {
	mu sync.Mutex

	left     L
	hasLeft  bool
	right    R
	hasRight bool
}

// setLeft stores v and returns both sides, ok only once each side has a value.
func (j *joinState[L, R]) setLeft(v L) (L, R, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.left, j.hasLeft = v, true
	return j.left, j.right, j.hasRight
}

func (j *joinState[L, R]) setRight(v R) (L, R, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.right, j.hasRight = v, true
	return j.left, j.right, j.hasLeft
}

// Join combines the latest values of lhs and rhs. Once both have emitted, every
// emission on either side emits combine(latestLeft, latestRight); before that
// nothing is emitted.
func Join[L, R, V any](lhs *Signal[L], rhs *Signal[R], combine func(L, R) V) *Signal[V] {
	out := New[V]()
	state := &joinState[L, R]{}

	lhs.Subscribe(func(v L) {
		if l, r, ok := state.setLeft(v); ok {
			out.Emit(combine(l, r))
		}
	})
	rhs.Subscribe(func(v R) {
		if l, r, ok := state.setRight(v); ok {
			out.Emit(combine(l, r))
		}
	})

	return out
}

// And joins two boolean signals with logical AND.
func And(lhs, rhs *Signal[bool]) *Signal[bool] {
	return Join(lhs, rhs, func(l, r bool) bool { return l && r })
}

// Or joins two boolean signals with logical OR.
func Or(lhs, rhs *Signal[bool]) *Signal[bool] {
	return Join(lhs, rhs, func(l, r bool) bool { return l || r })
}

// Xor joins two boolean signals with logical XOR.
func Xor(lhs, rhs *Signal[bool]) *Signal[bool] {
	return Join(lhs, rhs, func(l, r bool) bool { return l != r })
}

// Side names the signal an Either value came from.
type Side int

const (
	Left  Side = iota // from the left-hand signal
	Right             // from the right-hand signal
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Either holds a value from one of two signals. Only the field named by Side is set.
type Either[L, R any] struct {
	Side  Side
	Left  L
	Right R
}

// IsLeft reports whether the value came from the left-hand signal.
func (e Either[L, R]) IsLeft() bool { return e.Side == Left }

// IsRight reports whether the value came from the right-hand signal.
func (e Either[L, R]) IsRight() bool { return e.Side == Right }

func (e Either[L, R]) String() string {
	if e.IsLeft() {
		return fmt.Sprintf("left(%v)", e.Left)
	}
	return fmt.Sprintf("right(%v)", e.Right)
}

// Sum merges lhs and rhs. Every emission of either side is emitted once,
// tagged with its origin.
func Sum[L, R any](lhs *Signal[L], rhs *Signal[R]) *Signal[Either[L, R]] {
	out := New[Either[L, R]]()

	lhs.Subscribe(func(v L) {
		out.Emit(Either[L, R]{Side: Left, Left: v})
	})
	rhs.Subscribe(func(v R) {
		out.Emit(Either[L, R]{Side: Right, Right: v})
	})

	return out
}

// Pair holds the latest values of two joined signals.
type Pair[L, R any] struct {
	Left  L
	Right R
}

func (p Pair[L, R]) String() string {
	return fmt.Sprintf("(%v, %v)", p.Left, p.Right)
}

// Product joins lhs and rhs into pairs of their latest values.
func Product[L, R any](lhs *Signal[L], rhs *Signal[R]) *Signal[Pair[L, R]] {
	return Join(lhs, rhs, func(l L, r R) Pair[L, R] { return Pair[L, R]{l, r} })
}

// Zip combines the latest values of s and other with f, like Product followed
// by Map. It joins directly: a method building a Signal[Pair[T, T]] would
// instantiate Zip on that type too, without end.
func (s *Signal[T]) Zip(other *Signal[T], f func(T, T) T) *Signal[T] {
	return Join(s, other, f)
}
