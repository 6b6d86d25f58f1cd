package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/core/timer"
	"github.com/hay-kot/focusflow/internal/focusflow"
)

// FocusCmd runs a focus countdown for one task without the TUI.
type FocusCmd struct {
	flags *Flags
	app   *focusflow.App

	interval time.Duration

	// in and ticker are replaced in tests.
	in     io.Reader
	ticker timer.Ticker
}

// NewFocusCmd creates a new focus command.
func NewFocusCmd(flags *Flags, app *focusflow.App) *FocusCmd {
	return &FocusCmd{flags: flags, app: app, in: os.Stdin}
}

// Register adds the focus command to the application.
func (cmd *FocusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "focus",
		Usage:     "Count down a task's time allocation in the terminal",
		UsageText: "focusflow focus <id>",
		Description: `Focuses a task and counts down its time allocation.

Keys (or lines when stdin is not a terminal):
  p, space   pause / resume
  c          complete the task and exit
  s, q       skip: leave the task as is and exit`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "length of one countdown second",
				Value:       timer.DefaultInterval,
				Hidden:      true,
				Destination: &cmd.interval,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() < 1 {
				return fmt.Errorf("usage: focusflow focus <id>")
			}

			t, err := findTask(cmd.app.Tasks, c.Args().Get(0))
			if err != nil {
				return err
			}
			if t.Completed {
				return fmt.Errorf("task %q is already completed", t.ID)
			}

			return cmd.Run(ctx, c.Root().Writer, t)
		},
	})

	return app
}

type focusOutcome int

const (
	outcomeSkipped focusOutcome = iota
	outcomeCompleted
)

// Run focuses t and drives the countdown until the task is completed or
// skipped. Ticks and key input are both funneled into this goroutine so the
// store and session are only touched here.
func (cmd *FocusCmd) Run(ctx context.Context, w io.Writer, t task.Task) error {
	ticker := cmd.ticker
	if ticker == nil {
		ticker = timer.NewClockTicker(cmd.interval)
	}

	done := make(chan struct{})
	defer close(done)

	ticks := make(chan timer.Tick, 1)
	session := focusflow.NewFocusSession(ticker, func(tk timer.Tick) {
		select {
		case ticks <- tk:
		case <-done:
		}
	}, log.Logger)
	defer session.Close()

	store := cmd.app.Tasks
	unobserve := store.Observe(session)
	defer unobserve()

	keys, raw, restore := readKeys(cmd.in, done)
	defer restore()

	r := newFocusRenderer(w, raw)

	store.SetCurrentTask(&t)
	r.render(t, session)

	for {
		select {
		case <-ctx.Done():
			store.SetCurrentTask(nil)
			r.finish("")
			return ctx.Err()

		case tk := <-ticks:
			if !session.Advance(tk) {
				continue
			}
			r.render(t, session)
			if session.State() == timer.Expired {
				r.finish(styles.ExpiredBannerStyle.Render("Time's up!") + " press c to complete or s to skip")
				if keys == nil {
					return nil
				}
			}

		case key, ok := <-keys:
			if !ok {
				// without input only a running countdown can still end on its own
				keys = nil
				switch session.State() {
				case timer.Running:
					continue
				case timer.Expired:
					return nil
				default:
					store.SetCurrentTask(nil)
					r.finish("skipped " + t.Title)
					return nil
				}
			}

			outcome, exit, err := cmd.handleKey(ctx, key, session)
			if err != nil {
				return err
			}
			if exit {
				switch outcome {
				case outcomeCompleted:
					r.finish(styles.TextSuccessStyle.Render(styles.IconCheck) + " completed " + t.Title)
				default:
					r.finish("skipped " + t.Title)
				}
				return nil
			}
			r.render(t, session)
		}
	}
}

func (cmd *FocusCmd) handleKey(ctx context.Context, key string, session *focusflow.FocusSession) (focusOutcome, bool, error) {
	store := cmd.app.Tasks

	switch key {
	case "p", " ", "space":
		session.Toggle()
	case "c":
		if err := store.CompleteCurrent(ctx); err != nil {
			return outcomeCompleted, true, fmt.Errorf("complete task: %w", err)
		}
		return outcomeCompleted, true, nil
	case "s", "q", "\x03":
		store.SetCurrentTask(nil)
		return outcomeSkipped, true, nil
	}
	return outcomeSkipped, false, nil
}

// readKeys streams commands from in. A terminal on stdin is put in raw mode
// and each key press is a command; otherwise each line is one. raw reports
// whether the terminal was switched to raw mode.
func readKeys(in io.Reader, done <-chan struct{}) (keys <-chan string, raw bool, restore func()) {
	out := make(chan string)

	send := func(s string) bool {
		select {
		case out <- s:
			return true
		case <-done:
			return false
		}
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if state, err := term.MakeRaw(int(f.Fd())); err == nil {
			go func() {
				defer close(out)
				buf := make([]byte, 1)
				for {
					if _, err := f.Read(buf); err != nil {
						return
					}
					if !send(string(buf[0])) {
						return
					}
				}
			}()
			return out, true, func() { _ = term.Restore(int(f.Fd()), state) }
		}
	}

	go func() {
		defer close(out)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if line == "" {
				continue
			}
			if !send(line) {
				return
			}
		}
	}()
	return out, false, func() {}
}

// focusRenderer redraws a single status line in place when writing to a
// terminal, and prints one line per state change otherwise.
type focusRenderer struct {
	w         io.Writer
	live      bool
	raw       bool
	bar       progress.Model
	lastState timer.State
	drawn     bool
}

func newFocusRenderer(w io.Writer, raw bool) *focusRenderer {
	live := false
	if f, ok := w.(*os.File); ok {
		live = term.IsTerminal(int(f.Fd()))
	}

	return &focusRenderer{
		w:    w,
		live: live,
		raw:  raw,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (r *focusRenderer) line(t task.Task, s *focusflow.FocusSession) string {
	icon, clock := styles.IconRunning, styles.ClockStyle
	if s.State() == timer.Paused {
		icon, clock = styles.IconPaused, styles.ClockPausedStyle
	}

	return fmt.Sprintf("%s %s %s %s",
		icon,
		clock.Render(s.Display()),
		r.bar.ViewAs(s.Progress()/100),
		t.Title,
	)
}

func (r *focusRenderer) render(t task.Task, s *focusflow.FocusSession) {
	if r.live {
		_, _ = fmt.Fprintf(r.w, "\r\x1b[K%s", r.line(t, s))
		r.drawn = true
		return
	}

	if r.drawn && s.State() == r.lastState {
		return
	}
	r.lastState = s.State()
	r.drawn = true
	_, _ = fmt.Fprintf(r.w, "%s %s %s\n", s.State(), s.Display(), t.Title)
}

func (r *focusRenderer) finish(msg string) {
	nl := "\n"
	if r.raw {
		nl = "\r\n"
	}
	if r.live && r.drawn {
		_, _ = io.WriteString(r.w, nl)
		r.drawn = false
	}
	if msg != "" {
		_, _ = io.WriteString(r.w, msg+nl)
	}
}
