package timer

import (
	"sync"
	"time"
)

// DefaultInterval is the period of one timer tick.
const DefaultInterval = time.Second

// Tick is delivered by a focus session's tick source. Lease identifies the
// handle that produced it so ticks from a released handle can be discarded.
type Tick struct {
	Lease uint64
}

// Handle is an active subscription to a tick source. Stop is idempotent and
// does not wait for a callback already in flight, so owners must drop ticks
// whose Lease is no longer current.
type Handle interface {
	Stop()
}

// Ticker is a source of periodic callbacks.
type Ticker interface {
	Start(fn func()) Handle
}

// ClockTicker fires fn every Interval on its own goroutine. Callbacks are
// expected to hand off to the owner's event loop rather than mutate state.
type ClockTicker struct {
	Interval time.Duration
}

// NewClockTicker creates a ClockTicker. A non-positive interval uses
// DefaultInterval.
func NewClockTicker(interval time.Duration) *ClockTicker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ClockTicker{Interval: interval}
}

// Start begins firing fn until the returned handle is stopped.
func (c *ClockTicker) Start(fn func()) Handle {
	h := &clockHandle{done: make(chan struct{})}
	t := time.NewTicker(c.Interval)

	go func() {
		defer t.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-t.C:
				// done wins over a tick that raced with Stop
				select {
				case <-h.done:
					return
				default:
				}

				fn()
			}
		}
	}()

	return h
}

type clockHandle struct {
	once sync.Once
	done chan struct{}
}

func (h *clockHandle) Stop() {
	h.once.Do(func() { close(h.done) })
}
