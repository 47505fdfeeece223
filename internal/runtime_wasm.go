//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime(0)
	})

	return globalRuntime
}

func lookupRuntime() (*Runtime, bool) {
	return GetRuntime(), true
}

func (r *Runtime) releaseIfIdle() {}
