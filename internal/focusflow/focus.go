package focusflow

import (
	"github.com/rs/zerolog"

	"github.com/hay-kot/focusflow/internal/core/logging"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/core/timer"
)

var _ FocusObserver = (*FocusSession)(nil)

// FocusSession owns the countdown for the focused task and the tick source
// subscription that drives it. A subscription is held only while the timer
// is Running and is released on pause, expiry, and whenever focus ends or
// moves to another task.
//
// Ticks are delivered through notify, which must hand them to the owner's
// event loop; the loop then calls Advance. Ticks from a released
// subscription are ignored.
type FocusSession struct {
	ticker timer.Ticker
	notify func(timer.Tick)
	log    zerolog.Logger

	task   *task.Task
	timer  timer.Timer
	handle timer.Handle
	lease  uint64
}

// NewFocusSession creates an idle session.
func NewFocusSession(ticker timer.Ticker, notify func(timer.Tick), log zerolog.Logger) *FocusSession {
	return &FocusSession{
		ticker: ticker,
		notify: notify,
		log:    logging.Sub(log, "focus"),
	}
}

// FocusChanged follows the store's focus pointer. A refresh of the same task
// keeps the countdown unless its time allocation changed: editing the title
// or description of the focused task deliberately does not restart the
// timer, and a paused countdown stays paused.
func (s *FocusSession) FocusChanged(prev, next *task.Task) {
	switch {
	case next == nil:
		s.end()
	case s.task != nil && s.task.ID == next.ID:
		allocationChanged := s.task.TimeAllocation != next.TimeAllocation
		cp := *next
		s.task = &cp
		if allocationChanged {
			s.begin(next)
		}
	default:
		s.begin(next)
	}
}

// Toggle pauses a running countdown or resumes a paused one.
func (s *FocusSession) Toggle() {
	s.timer.Toggle()

	switch s.timer.State() {
	case timer.Running:
		s.acquire()
	case timer.Paused:
		s.release()
	}

	s.log.Debug().Str("state", s.timer.State().String()).Msg("focus toggled")
}

// Advance applies a tick. It reports whether the countdown changed.
func (s *FocusSession) Advance(t timer.Tick) bool {
	if s.handle == nil || t.Lease != s.lease {
		return false
	}

	if !s.timer.Tick() {
		return false
	}

	if s.timer.State() == timer.Expired {
		s.release()
		if s.task != nil {
			s.log.Info().Str("task_id", s.task.ID).Msg("focus time expired")
		}
	}
	return true
}

// Close releases the tick source and returns the session to Idle. It is
// called when the view that owns the session is torn down.
func (s *FocusSession) Close() {
	s.end()
}

// Task returns the task the session is counting down for.
func (s *FocusSession) Task() (task.Task, bool) {
	if s.task == nil {
		return task.Task{}, false
	}
	return *s.task, true
}

func (s *FocusSession) State() timer.State { return s.timer.State() }
func (s *FocusSession) Remaining() int     { return s.timer.Remaining() }
func (s *FocusSession) Total() int         { return s.timer.Total() }
func (s *FocusSession) Progress() float64  { return s.timer.Progress() }
func (s *FocusSession) Display() string    { return s.timer.Display() }

// Ticking reports whether a tick subscription is currently held.
func (s *FocusSession) Ticking() bool {
	return s.handle != nil
}

func (s *FocusSession) begin(t *task.Task) {
	s.release()

	cp := *t
	s.task = &cp
	s.timer.Start(cp.Seconds())

	if s.timer.State() == timer.Running {
		s.acquire()
	}

	s.log.Debug().Str("task_id", cp.ID).Int("seconds", s.timer.Total()).Msg("focus started")
}

func (s *FocusSession) end() {
	s.release()
	if s.task != nil {
		s.log.Debug().Str("task_id", s.task.ID).Msg("focus ended")
	}
	s.task = nil
	s.timer.Reset()
}

func (s *FocusSession) acquire() {
	if s.handle != nil {
		return
	}

	s.lease++
	lease := s.lease
	notify := s.notify
	s.handle = s.ticker.Start(func() {
		notify(timer.Tick{Lease: lease})
	})
}

func (s *FocusSession) release() {
	if s.handle == nil {
		return
	}
	s.handle.Stop()
	s.handle = nil
}
