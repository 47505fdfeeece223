//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime(gid)
	runtimes.Store(gid, r)
	return r
}

func lookupRuntime() (*Runtime, bool) {
	r, ok := runtimes.Load(getGID())
	if !ok {
		return nil, false
	}

	return r.(*Runtime), true
}

// timer callbacks run on short lived goroutines, so runtimes are dropped as
// soon as nothing is in flight on them
func (r *Runtime) releaseIfIdle() {
	if r.idle() {
		runtimes.Delete(r.gid)
	}
}

func getGID() int64 {
	return goid.Get()
}
