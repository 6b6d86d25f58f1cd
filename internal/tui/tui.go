package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/focusflow/internal/core/timer"
)

// Run starts the TUI and blocks until it exits. Countdown ticks are handed
// to the program with Send so every store and session mutation happens on
// the Bubble Tea event loop.
func Run(ctx context.Context, deps Deps) error {
	relay := newTickRelay()
	defer relay.stop()

	ticker := timer.NewClockTicker(timer.DefaultInterval)
	m := New(deps, ticker, relay.notify)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	go relay.forward(p.Send)

	final, err := p.Run()
	relay.stop()
	if fm, ok := final.(Model); ok {
		fm.Close()
	} else {
		m.Close()
	}

	return err
}

// tickRelay carries ticks from the ticker goroutine to the program. Ticks
// may arrive before the program exists (focus restored in New); they wait
// until forward starts.
type tickRelay struct {
	ticks    chan timer.Tick
	done     chan struct{}
	stopOnce sync.Once
}

func newTickRelay() *tickRelay {
	return &tickRelay{
		ticks: make(chan timer.Tick),
		done:  make(chan struct{}),
	}
}

// notify blocks until the tick is forwarded or the relay stops.
func (r *tickRelay) notify(t timer.Tick) {
	select {
	case r.ticks <- t:
	case <-r.done:
	}
}

// forward sends ticks as messages until the relay stops.
func (r *tickRelay) forward(send func(tea.Msg)) {
	for {
		select {
		case t := <-r.ticks:
			send(tickMsg(t))
		case <-r.done:
			return
		}
	}
}

func (r *tickRelay) stop() {
	r.stopOnce.Do(func() { close(r.done) })
}
