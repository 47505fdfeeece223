// Package sigstream is a small push-based reactive stream library.
//
// Signals are wired together with derivation operators (Map, Filter, Reduce)
// and combinators (Join, And, Or, Xor, Sum, Product, Zip). Emit propagates a
// value synchronously, depth first, through every subscriber in the order the
// subscribers were added. Throttled signals are the only asynchronous boundary:
// they hand propagation to a timer.Scheduler.
//
// A panic raised by a subscriber is not isolated. It unwinds out of Emit and
// the subscribers after it do not see that emission.
package sigstream

import (
	"time"

	"github.com/AnatoleLucet/sigstream/internal"
)

// ErrDepthExceeded is the cause of the panic raised when emissions nest too
// deeply, typically because signals were wired into a cycle.
var ErrDepthExceeded = internal.ErrDepthExceeded

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Emission is one timestamped value propagated through a signal.
type Emission[T any] struct {
	Time  time.Time
	Value T
}

// IsReplay reports whether the emission was synthesized by a sequence replay
// rather than emitted live.
func (e Emission[T]) IsReplay() bool {
	return e.Time.IsZero()
}

func fromInternal[T any](e internal.Emission) Emission[T] {
	return Emission[T]{Time: e.Time, Value: as[T](e.Value)}
}

// Subscription is the handle returned by every subscribe call.
type Subscription struct {
	link *internal.SubscriberLink
}

// Unsubscribe removes the callback from its signal. It reports whether this
// call removed it; later calls return false.
func (s *Subscription) Unsubscribe() bool {
	return s.link.Unlink()
}

// Active reports whether the callback is still registered.
func (s *Subscription) Active() bool {
	return !s.link.Removed()
}
