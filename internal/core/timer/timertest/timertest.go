// Package timertest provides a manually driven tick source for tests.
package timertest

import (
	"sync"

	"github.com/hay-kot/focusflow/internal/core/timer"
)

var _ timer.Ticker = (*Ticker)(nil)

// Ticker records subscriptions and fires them only when Fire is called.
type Ticker struct {
	mu      sync.Mutex
	handles []*Handle
	started int
}

// New creates a manual Ticker.
func New() *Ticker {
	return &Ticker{}
}

// Start registers fn. It is called once per Fire until the handle stops.
func (t *Ticker) Start(fn func()) timer.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := &Handle{fn: fn}
	t.handles = append(t.handles, h)
	t.started++
	return h
}

// Fire invokes every active subscription n times.
func (t *Ticker) Fire(n int) {
	for range n {
		for _, h := range t.activeHandles() {
			h.fn()
		}
	}
}

// Active returns the number of subscriptions that have not been stopped.
func (t *Ticker) Active() int {
	return len(t.activeHandles())
}

// Started returns the number of subscriptions ever created.
func (t *Ticker) Started() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *Ticker) activeHandles() []*Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	var active []*Handle
	for _, h := range t.handles {
		if !h.Stopped() {
			active = append(active, h)
		}
	}
	return active
}

// Handle is a subscription created by Ticker.Start.
type Handle struct {
	mu      sync.Mutex
	fn      func()
	stopped bool
}

func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
}

// Stopped reports whether Stop has been called.
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}
