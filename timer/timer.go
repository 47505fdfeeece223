package timer

import "time"

// Timer is a handle on a scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer, false if it already fired or was stopped.
	Stop() bool
}

// Scheduler fires callbacks once after a delay.
type Scheduler interface {
	// AfterFunc calls fn once, after at least d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real schedules callbacks with time.AfterFunc. Callbacks run on their own goroutine.
type Real struct{}

func (Real) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Default is the scheduler used when none is configured.
var Default Scheduler = Real{}
