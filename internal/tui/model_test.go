package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/focusflow/internal/core/config"
	"github.com/hay-kot/focusflow/internal/core/kv"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/core/timer"
	"github.com/hay-kot/focusflow/internal/core/timer/timertest"
	"github.com/hay-kot/focusflow/internal/data/stores"
	"github.com/hay-kot/focusflow/internal/focusflow"
	"github.com/hay-kot/focusflow/pkg/tuitest"
)

type harness struct {
	t      *testing.T
	m      Model
	store  *focusflow.TaskStore
	ticker *timertest.Ticker
	ticks  []timer.Tick
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	render := false
	cfg.TUI.RenderMarkdown = &render

	store := focusflow.NewTaskStore(context.Background(),
		stores.NewTaskRepository(kv.NewMemory(), stores.DefaultTaskKey), zerolog.Nop())

	h := &harness{t: t, store: store, ticker: timertest.New()}
	h.m = New(Deps{Config: &cfg, Tasks: store, BuildInfo: focusflow.BuildInfo{Version: "test"}}, h.ticker, func(tk timer.Tick) {
		h.ticks = append(h.ticks, tk)
	})
	h.send(tuitest.WindowSize(120, 40))
	t.Cleanup(h.m.Close)
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	updated, _ := h.m.Update(msg)
	m, ok := updated.(Model)
	require.True(h.t, ok)
	h.m = m
}

func (h *harness) press(keys ...rune) {
	h.t.Helper()
	for _, k := range keys {
		h.send(tuitest.KeyPress(k))
	}
}

// tick fires n ticks and routes them through Update like Program.Send would.
func (h *harness) tick(n int) {
	h.t.Helper()
	for range n {
		h.ticker.Fire(1)
		pending := h.ticks
		h.ticks = nil
		for _, tk := range pending {
			h.send(tickMsg(tk))
		}
	}
}

func (h *harness) view() string {
	return tuitest.StripANSI(h.m.View())
}

func TestModel_ShowsChoicePair(t *testing.T) {
	h := newHarness(t)

	view := h.view()
	assert.Contains(t, view, "Fix critical bug in login flow")
	assert.Contains(t, view, "Prepare for client presentation")
	assert.NotContains(t, view, "Check emails")
}

func TestModel_SelectFocusesTask(t *testing.T) {
	h := newHarness(t)
	pair, ok := h.store.Choices()
	require.True(t, ok)

	h.press('l')
	h.send(tuitest.KeyEnter())

	cur, ok := h.store.Current()
	require.True(t, ok)
	assert.Equal(t, pair[1].ID, cur.ID)
	assert.Equal(t, timer.Running, h.m.Session().State())
	assert.Equal(t, 1, h.ticker.Active())
	assert.Contains(t, h.view(), "60:00")
}

func TestModel_PickByNumber(t *testing.T) {
	h := newHarness(t)
	pair, _ := h.store.Choices()

	h.press('1')

	cur, ok := h.store.Current()
	require.True(t, ok)
	assert.Equal(t, pair[0].ID, cur.ID)
}

func TestModel_CountdownAndPause(t *testing.T) {
	h := newHarness(t)
	h.press('1') // 45 minutes

	h.tick(60)
	assert.Equal(t, "44:00", h.m.Session().Display())
	assert.Contains(t, h.view(), "44:00")

	h.send(tuitest.KeySpace())
	assert.Equal(t, timer.Paused, h.m.Session().State())
	assert.Equal(t, 0, h.ticker.Active())
	assert.Contains(t, h.view(), "paused")

	h.tick(10)
	assert.Equal(t, "44:00", h.m.Session().Display())

	h.send(tuitest.KeySpace())
	h.tick(1)
	assert.Equal(t, "43:59", h.m.Session().Display())
}

func TestModel_Expiry(t *testing.T) {
	h := newHarness(t)
	h.press('1')
	cur, _ := h.store.Current()

	h.tick(cur.Seconds())

	assert.Equal(t, timer.Expired, h.m.Session().State())
	assert.Equal(t, 0, h.ticker.Active())
	view := h.view()
	assert.Contains(t, view, "Time's up!")
	assert.Contains(t, view, "00:00")
}

func TestModel_CompleteFocusedTask(t *testing.T) {
	h := newHarness(t)
	pair, _ := h.store.Choices()
	h.press('1')
	h.tick(5)

	h.press('c')

	got, _ := h.store.Get(pair[0].ID)
	assert.True(t, got.Completed)
	_, focused := h.store.Current()
	assert.False(t, focused)
	assert.Equal(t, 0, h.ticker.Active())

	next, ok := h.store.Choices()
	require.True(t, ok)
	assert.Equal(t, pair[1].ID, next[0].ID)
	assert.Contains(t, h.view(), "completed "+pair[0].Title)
}

func TestModel_SkipKeepsTaskIncomplete(t *testing.T) {
	h := newHarness(t)
	pair, _ := h.store.Choices()
	h.press('1')

	h.press('s')

	got, _ := h.store.Get(pair[0].ID)
	assert.False(t, got.Completed)
	_, focused := h.store.Current()
	assert.False(t, focused)
	assert.Equal(t, timer.Idle, h.m.Session().State())
	assert.Contains(t, h.view(), "What will you focus on?")
}

func TestModel_EmptyState(t *testing.T) {
	h := newHarness(t)
	for _, tk := range h.store.Tasks() {
		require.NoError(t, h.store.Delete(context.Background(), tk.ID))
	}
	h.m.afterMutation()

	assert.Contains(t, h.view(), "No Tasks Available")

	h.send(tuitest.KeyEnter())
	_, focused := h.store.Current()
	assert.False(t, focused)
}

func TestModel_TaskListFocus(t *testing.T) {
	h := newHarness(t)
	tasks := h.store.Tasks()

	h.send(tuitest.KeyTab())
	require.Equal(t, TabTasks, h.m.Tab())
	assert.Contains(t, h.view(), "Check emails")

	h.press('j', 'j', 'j', 'j')
	h.send(tuitest.KeyEnter())

	assert.Equal(t, TabFocus, h.m.Tab())
	cur, ok := h.store.Current()
	require.True(t, ok)
	assert.Equal(t, tasks[4].ID, cur.ID)
	assert.Contains(t, h.view(), "15:00")
}

func TestModel_DeleteWithConfirm(t *testing.T) {
	h := newHarness(t)
	tasks := h.store.Tasks()

	// focus the first task, then delete it from the list
	first := tasks[0]
	h.store.SetCurrentTask(&first)
	require.Equal(t, 1, h.ticker.Active())

	h.send(tuitest.KeyTab())
	h.press('d')
	assert.Contains(t, h.view(), "Delete")

	h.press('n')
	assert.Len(t, h.store.Tasks(), 5)

	h.press('d', 'y')
	assert.Len(t, h.store.Tasks(), 4)
	_, ok := h.store.Get(first.ID)
	assert.False(t, ok)
	_, focused := h.store.Current()
	assert.False(t, focused)
	assert.Equal(t, 0, h.ticker.Active())
}

func TestModel_MarkDone(t *testing.T) {
	h := newHarness(t)
	first := h.store.Tasks()[0]

	h.send(tuitest.KeyTab())
	h.press('x')

	got, _ := h.store.Get(first.ID)
	assert.True(t, got.Completed)
	_, focused := h.store.Current()
	assert.False(t, focused)
	assert.Equal(t, 0, h.ticker.Active())

	h.press('x')
	got, _ = h.store.Get(first.ID)
	assert.True(t, got.Completed, "completion is never undone")
	assert.Equal(t, "task is already completed", h.m.status)
}

func TestModel_MarkDoneKeepsOtherFocus(t *testing.T) {
	h := newHarness(t)
	pair, _ := h.store.Choices()
	h.press('1')
	h.tick(10)
	remaining := h.m.Session().Remaining()

	h.send(tuitest.KeyTab())
	h.press('x') // first row is not the focused task

	assert.True(t, h.store.Tasks()[0].Completed)

	cur, focused := h.store.Current()
	require.True(t, focused)
	assert.Equal(t, pair[0].ID, cur.ID)
	assert.Equal(t, timer.Running, h.m.Session().State())
	assert.Equal(t, remaining, h.m.Session().Remaining())
	assert.Equal(t, 1, h.ticker.Active())

	h.tick(1)
	assert.Equal(t, remaining-1, h.m.Session().Remaining())
}

func TestModel_MarkDoneFocusedTask(t *testing.T) {
	h := newHarness(t)
	pair, _ := h.store.Choices()
	h.press('1')

	h.send(tuitest.KeyTab())
	h.press('j') // seed order puts the first choice on the second row
	h.press('x')

	got, _ := h.store.Get(pair[0].ID)
	assert.True(t, got.Completed)
	_, focused := h.store.Current()
	assert.False(t, focused)
	assert.Equal(t, 0, h.ticker.Active())
}

func TestModel_FormOpenAndCancel(t *testing.T) {
	h := newHarness(t)

	h.press('a')
	require.Equal(t, stateForm, h.m.state)
	assert.Contains(t, h.view(), "New task")

	h.send(tuitest.KeyEsc())
	assert.Equal(t, stateNormal, h.m.state)
	assert.Len(t, h.store.Tasks(), 5)
}

func TestModel_SubmitFormAdds(t *testing.T) {
	h := newHarness(t)
	h.press('a')

	h.m.formValues.Title = "Write changelog"
	h.m.formValues.Priority = task.PriorityHigh
	h.m.formValues.Minutes = "20"
	h.m.submitForm()

	assert.Equal(t, stateNormal, h.m.state)
	tasks := h.store.Tasks()
	require.Len(t, tasks, 6)
	assert.Equal(t, "Write changelog", tasks[5].Title)
	assert.Equal(t, 20, tasks[5].TimeAllocation)
	assert.Equal(t, 6, h.m.list.Len())
}

func TestModel_SubmitFormEditsFocusedTask(t *testing.T) {
	h := newHarness(t)
	h.press('1')
	cur, _ := h.store.Current()
	h.tick(30)

	h.send(tuitest.KeyTab())
	h.press('j') // seed[1] is the first choice
	h.press('e')
	require.Equal(t, stateForm, h.m.state)
	assert.Equal(t, cur.Title, h.m.formValues.Title)

	h.m.formValues.Title = "Fix login bug"
	h.m.submitForm()

	got, _ := h.store.Get(cur.ID)
	assert.Equal(t, "Fix login bug", got.Title)

	focused, ok := h.m.Session().Task()
	require.True(t, ok)
	assert.Equal(t, "Fix login bug", focused.Title)
	assert.Equal(t, cur.Seconds()-30, h.m.Session().Remaining(), "same allocation keeps the countdown")
}

func TestModel_SubmitFormInvalidKeepsStore(t *testing.T) {
	h := newHarness(t)
	h.press('a')

	h.m.formValues.Title = ""
	h.m.formValues.Minutes = "20"
	h.m.submitForm()

	assert.Len(t, h.store.Tasks(), 5)
	assert.Contains(t, h.m.status, "title")
}

func TestModel_CloseReleasesTicker(t *testing.T) {
	h := newHarness(t)
	h.press('1')
	require.Equal(t, 1, h.ticker.Active())

	h.m.Close()
	assert.Equal(t, 0, h.ticker.Active())
}

func TestModel_QuitAndHelp(t *testing.T) {
	h := newHarness(t)

	h.press('?')
	assert.True(t, h.m.help.ShowAll)

	_, cmd := h.m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
