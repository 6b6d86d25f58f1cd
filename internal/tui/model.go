// Package tui implements the interactive focusflow view: a Focus tab that
// offers the choice pair and runs the countdown, and a Tasks tab for
// managing the task list.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/focusflow/internal/core/config"
	"github.com/hay-kot/focusflow/internal/core/logging"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/core/timer"
	"github.com/hay-kot/focusflow/internal/focusflow"
	"github.com/hay-kot/focusflow/internal/tui/components"
	"github.com/hay-kot/focusflow/internal/tui/components/taskform"
)

// Deps are the services the TUI drives.
type Deps struct {
	Config    *config.Config
	Tasks     *focusflow.TaskStore
	BuildInfo focusflow.BuildInfo
}

// Tab identifies the visible view.
type Tab int

const (
	TabFocus Tab = iota
	TabTasks
)

func (t Tab) String() string {
	if t == TabTasks {
		return "Tasks"
	}
	return "Focus"
}

// UIState represents the current modal state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateForm
	stateConfirming
)

// tickMsg carries a countdown tick into the event loop.
type tickMsg timer.Tick

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	cfg       *config.Config
	build     focusflow.BuildInfo
	store     *focusflow.TaskStore
	session   *focusflow.FocusSession
	unobserve func()

	tab          Tab
	state        UIState
	choiceCursor int
	list         *TaskList

	// add/edit form
	form       *huh.Form
	formValues *taskform.Values
	formTaskID string // empty when adding

	confirm components.ConfirmDelete

	keys KeyMap
	help help.Model
	bar  progress.Model
	desc *descriptionRenderer

	status string
	width  int
	height int
}

// New creates the model. notify must deliver ticks to the running program,
// typically by wrapping Program.Send.
func New(deps Deps, ticker timer.Ticker, notify func(timer.Tick)) Model {
	session := focusflow.NewFocusSession(ticker, notify, log.Logger)

	m := Model{
		cfg:       deps.Config,
		build:     deps.BuildInfo,
		store:     deps.Tasks,
		session:   session,
		unobserve: deps.Tasks.Observe(session),
		list:      NewTaskList(deps.Config.TUI.ShowCompletedOrDefault()),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		bar:       progress.New(progress.WithDefaultGradient()),
		desc:      newDescriptionRenderer(deps.Config.TUI.RenderMarkdownOrDefault()),
	}
	m.list.SetTasks(m.store.Tasks())

	// focus may already be set if the store was driven before the TUI opened
	if cur, ok := m.store.Current(); ok {
		session.FocusChanged(nil, &cur)
	}

	return m
}

// Close releases the tick source and detaches from the store.
func (m Model) Close() {
	m.session.Close()
	if m.unobserve != nil {
		m.unobserve()
	}
}

// Tab returns the visible tab.
func (m Model) Tab() Tab { return m.tab }

// Session returns the focus session.
func (m Model) Session() *focusflow.FocusSession { return m.session }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tickMsg:
		m.session.Advance(timer.Tick(msg))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == stateForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	contentWidth := max(msg.Width-4, 20)
	m.bar.Width = min(contentWidth, 60)
	m.desc.SetWidth(min(contentWidth, 80))
	// header, tab bar, blank line, help line
	m.list.SetSize(contentWidth, max(msg.Height-6, 3))

	if m.form != nil {
		m.form = m.form.WithWidth(min(contentWidth, 70))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateForm:
		if msg.String() == "esc" {
			m.closeForm()
			m.status = "cancelled"
			return m, nil
		}
		return m.updateForm(msg)
	case stateConfirming:
		return m.handleConfirmKey(msg)
	}

	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		if m.tab == TabFocus {
			m.tab = TabTasks
		} else {
			m.tab = TabFocus
		}
		return m, nil
	}

	if m.tab == TabTasks {
		return m.handleListKey(msg)
	}
	if _, focused := m.session.Task(); focused {
		return m.handleFocusKey(msg)
	}
	return m.handleChoiceKey(msg)
}

func (m Model) handleChoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pair, ok := m.store.Choices()

	switch {
	case key.Matches(msg, m.keys.Add):
		return m.openForm(nil)
	case !ok:
		return m, nil
	case key.Matches(msg, m.keys.Left):
		m.choiceCursor = 0
	case key.Matches(msg, m.keys.Right):
		m.choiceCursor = 1
	case key.Matches(msg, m.keys.Select):
		m.focus(pair[m.choiceCursor])
	case key.Matches(msg, m.keys.PickOne):
		m.focus(pair[0])
	case key.Matches(msg, m.keys.PickTwo):
		m.focus(pair[1])
	}
	return m, nil
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		m.session.Toggle()
	case key.Matches(msg, m.keys.Complete):
		if t, ok := m.session.Task(); ok {
			m.report(m.store.CompleteCurrent(context.Background()))
			if m.status == "" {
				m.status = "completed " + t.Title
			}
		}
		m.afterMutation()
	case key.Matches(msg, m.keys.Skip):
		m.store.SetCurrentTask(nil)
		m.choiceCursor = 0
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.list.Up()
	case key.Matches(msg, m.keys.Down):
		m.list.Down()
	case key.Matches(msg, m.keys.Add):
		return m.openForm(nil)
	}

	sel, ok := m.list.Selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Select):
		if sel.Completed {
			m.status = "task is already completed"
			return m, nil
		}
		m.focus(sel)
	case key.Matches(msg, m.keys.Edit):
		return m.openForm(&sel)
	case key.Matches(msg, m.keys.Delete):
		m.confirm = components.NewConfirmDelete(sel)
		m.state = stateConfirming
	case key.Matches(msg, m.keys.Done):
		if sel.Completed {
			m.status = "task is already completed"
			return m, nil
		}
		// the focused task completes through the store so its countdown is
		// released; any other row is updated without touching focus
		if cur, ok := m.store.Current(); ok && cur.ID == sel.ID {
			m.report(m.store.CompleteCurrent(context.Background()))
		} else {
			sel.Completed = true
			m.report(m.store.Update(context.Background(), sel))
		}
		if m.status == "" {
			m.status = "completed " + sel.Title
		}
		m.afterMutation()
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirm, _ = m.confirm.Update(msg)

	switch {
	case m.confirm.Confirmed():
		m.report(m.store.Delete(context.Background(), m.confirm.Target().ID))
		m.afterMutation()
		m.state = stateNormal
	case m.confirm.Cancelled():
		m.state = stateNormal
	}
	return m, nil
}

// focus makes t the current task and shows the countdown.
func (m *Model) focus(t task.Task) {
	m.store.SetCurrentTask(&t)
	m.tab = TabFocus
	log.Debug().Ctx(logging.WithTaskID(context.Background(), t.ID)).Msg("task focused")
}

func (m Model) openForm(existing *task.Task) (tea.Model, tea.Cmd) {
	d := m.cfg.DefaultDraft()
	m.formTaskID = ""
	if existing != nil {
		d = existing.Draft()
		m.formTaskID = existing.ID
	}

	m.formValues = taskform.FromDraft(d)
	m.form = taskform.New(m.formValues).WithWidth(min(max(m.width-4, 20), 70))
	m.state = stateForm
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm adds or updates a task from the form values.
func (m *Model) submitForm() {
	defer m.closeForm()

	d, err := m.formValues.Draft()
	if err != nil {
		m.status = err.Error()
		return
	}

	ctx := context.Background()
	if m.formTaskID == "" {
		added, err := m.store.Add(ctx, d)
		m.report(err)
		if err == nil {
			m.status = "added " + added.Title
		}
	} else if existing, ok := m.store.Get(m.formTaskID); ok {
		m.report(m.store.Update(ctx, existing.Apply(d)))
	}
	m.afterMutation()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formValues = nil
	m.formTaskID = ""
	m.state = stateNormal
}

// afterMutation refreshes derived view state from the store.
func (m *Model) afterMutation() {
	m.list.SetTasks(m.store.Tasks())
	if _, ok := m.store.Choices(); !ok {
		m.choiceCursor = 0
	}
}

// report surfaces a store error in the status line.
func (m *Model) report(err error) {
	if err != nil {
		m.status = "error: " + err.Error()
	}
}
