// Package timer implements the focus countdown state machine and the tick
// source it is driven by.
package timer

import "fmt"

// State is the lifecycle state of a Timer.
type State int

const (
	Idle State = iota
	Running
	Paused
	Expired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Timer counts down whole seconds. One call to Tick is one second.
// The zero value is an Idle timer.
type Timer struct {
	total     int
	remaining int
	state     State
}

// Start seeds the timer with total seconds and moves it to Running,
// discarding any previous state. A zero total expires immediately.
func (t *Timer) Start(total int) {
	t.total = max(total, 0)
	t.remaining = t.total
	t.state = Running
	if t.remaining == 0 {
		t.state = Expired
	}
}

// Toggle flips between Running and Paused. It has no effect when the
// timer is Idle or Expired.
func (t *Timer) Toggle() {
	switch t.state {
	case Running:
		t.state = Paused
	case Paused:
		t.state = Running
	}
}

// Tick decrements the remaining time by one second while Running and
// reports whether it did. The timer expires the instant remaining reaches 0.
func (t *Timer) Tick() bool {
	if t.state != Running || t.remaining == 0 {
		return false
	}

	t.remaining--
	if t.remaining == 0 {
		t.state = Expired
	}
	return true
}

// Reset returns the timer to Idle.
func (t *Timer) Reset() {
	*t = Timer{}
}

func (t *Timer) State() State   { return t.state }
func (t *Timer) Total() int     { return t.total }
func (t *Timer) Remaining() int { return t.remaining }
func (t *Timer) Elapsed() int   { return t.total - t.remaining }

// Progress is the elapsed share of the session as a percentage.
func (t *Timer) Progress() float64 {
	return Progress(t.Elapsed(), t.total)
}

// Display renders the remaining time as MM:SS.
func (t *Timer) Display() string {
	return FormatClock(t.remaining)
}

// Progress returns (elapsed/total)*100 clamped to [0, 100]. A zero total
// yields 0.
func Progress(elapsed, total int) float64 {
	if total == 0 {
		return 0
	}
	return min(100, max(0, float64(elapsed)/float64(total)*100))
}

// FormatClock renders seconds as zero-padded MM:SS. Minutes are not
// bounded: 6000 seconds renders as "100:00".
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
