package sigstream

import (
	"time"

	"github.com/AnatoleLucet/sigstream/internal"
)

// Policy customizes how a signal treats new subscribers and emitted values.
type Policy[T any] interface {
	// OnSubscribe is called with a new subscriber before it is registered.
	OnSubscribe(deliver func(Emission[T]))
	// OnEmit is called for every emitted value. Calling propagate delivers a
	// value to the registered subscribers.
	OnEmit(value T, propagate func(T))
}

// Holder is implemented by policies that remember the last value.
type Holder[T any] interface {
	Latest() (T, bool)
}

// Signal is an observable source of values.
type Signal[T any] struct {
	node   *internal.Node
	policy Policy[T]

	propagate func(T)
}

// New creates a plain signal: every emitted value goes straight to the subscribers.
func New[T any]() *Signal[T] {
	return NewWithPolicy[T](nil)
}

// NewWithPolicy creates a signal whose emissions and subscriptions go through p.
// A nil policy behaves like New.
func NewWithPolicy[T any](p Policy[T]) *Signal[T] {
	s := &Signal[T]{
		node:   internal.NewNode(),
		policy: p,
	}
	s.propagate = s.broadcast

	return s
}

// Emit sends v to the subscribers, synchronously and in subscription order.
func (s *Signal[T]) Emit(v T) {
	if s.policy == nil {
		s.broadcast(v)
		return
	}

	s.policy.OnEmit(v, s.propagate)
}

func (s *Signal[T]) broadcast(v T) {
	s.node.Emit(internal.Emission{Time: time.Now(), Value: v})
}

// Subscribe registers fn to receive every future value.
func (s *Signal[T]) Subscribe(fn func(T)) *Subscription {
	return s.SubscribeEmission(func(e Emission[T]) { fn(e.Value) })
}

// SubscribeEmission registers fn to receive every future emission with its timestamp.
//
// When called inside Owner.Run the subscription is removed when the owner is disposed.
func (s *Signal[T]) SubscribeEmission(fn func(Emission[T])) *Subscription {
	if s.policy != nil {
		s.policy.OnSubscribe(fn)
	}

	sub := &Subscription{
		s.node.Subscribe(func(e internal.Emission) { fn(fromInternal[T](e)) }),
	}
	internal.OnCleanup(func() { sub.Unsubscribe() })

	return sub
}

// Pipe forwards every value of s into other.
func (s *Signal[T]) Pipe(other *Signal[T]) *Subscription {
	return s.Subscribe(other.Emit)
}

// Latest returns the value held by the signal's policy. It reports false when
// the policy holds nothing or no value has been received yet.
func (s *Signal[T]) Latest() (T, bool) {
	if l, ok := s.policy.(Holder[T]); ok {
		return l.Latest()
	}

	var zero T
	return zero, false
}

// Subscribers returns the number of active subscriptions.
func (s *Signal[T]) Subscribers() int {
	return s.node.Len()
}
