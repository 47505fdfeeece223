package timer

import (
	"sync"
	"time"
)

// Ticker calls a function repeatedly at a fixed period between Start and Stop.
type Ticker struct {
	Period time.Duration

	fn func()

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewTicker creates a stopped ticker calling fn every period.
func NewTicker(period time.Duration, fn func()) *Ticker {
	return &Ticker{Period: period, fn: fn}
}

// Start begins ticking. Starting a running ticker does nothing.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		return
	}

	stop := make(chan struct{})
	t.stop = stop

	ticker := time.NewTicker(t.Period)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.fn()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the ticker and waits for an in-flight call to return.
// It must not be called from the ticker function itself.
func (t *Ticker) Stop() {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop == nil {
		return
	}

	close(stop)
	t.wg.Wait()
}

// Running reports whether the ticker has been started and not stopped.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stop != nil
}
