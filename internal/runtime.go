package internal

import (
	"errors"
	"fmt"
)

// MaxDepth bounds how many emissions may be nested on one goroutine.
const MaxDepth = 10000

// ErrDepthExceeded is the panic cause when propagation nests deeper than MaxDepth,
// usually because signals were wired into a cycle.
var ErrDepthExceeded = errors.New("sigstream: propagation depth exceeded")

// Runtime holds the propagation state of a single goroutine.
type Runtime struct {
	gid int64

	tracker *Tracker

	// number of Emit calls currently on this goroutine's stack
	depth int
}

func NewRuntime(gid int64) *Runtime {
	return &Runtime{
		gid:     gid,
		tracker: NewTracker(),
	}
}

// Enter marks the start of an emission on the calling goroutine.
func Enter() *Runtime {
	r := GetRuntime()

	r.depth++
	if r.depth > MaxDepth {
		r.Exit()
		panic(fmt.Errorf("%w: more than %d nested emissions", ErrDepthExceeded, MaxDepth))
	}

	return r
}

// Exit marks the end of an emission started with Enter.
func (r *Runtime) Exit() {
	r.depth--
	r.releaseIfIdle()
}

func (r *Runtime) Depth() int {
	return r.depth
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) idle() bool {
	return r.depth == 0 && r.tracker.CurrentOwner() == nil
}

// CurrentOwner returns the owner running on the calling goroutine, if any.
func CurrentOwner() *Owner {
	r, ok := lookupRuntime()
	if !ok {
		return nil
	}

	return r.CurrentOwner()
}

// OnCleanup registers fn with the current owner. It is a no-op outside of one.
func OnCleanup(fn func()) {
	if owner := CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}
