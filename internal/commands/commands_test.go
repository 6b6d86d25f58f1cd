package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/focusflow/internal/core/config"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/core/timer"
	"github.com/hay-kot/focusflow/internal/core/timer/timertest"
	"github.com/hay-kot/focusflow/internal/focusflow"
)

func newTestApp(t *testing.T) *focusflow.App {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Driver = config.DriverMemory
	cfg.DataDir = t.TempDir()

	app, err := focusflow.NewApp(context.Background(), &cfg, focusflow.BuildInfo{Version: "test"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// emptyApp returns an app whose seed tasks have been removed.
func emptyApp(t *testing.T) *focusflow.App {
	t.Helper()
	app := newTestApp(t)
	for _, tk := range app.Tasks.Tasks() {
		require.NoError(t, app.Tasks.Delete(context.Background(), tk.ID))
	}
	return app
}

func runCmd(t *testing.T, app *focusflow.App, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	flags := &Flags{}
	root := &cli.Command{
		Name:      "focusflow",
		Writer:    &out,
		ErrWriter: &out,
	}

	focus := NewFocusCmd(flags, app)
	root = NewTaskCmd(flags, app).Register(root)
	root = NewChooseCmd(flags, app, focus).Register(root)
	root = NewConfigCmd(flags, app).Register(root)

	err := root.Run(context.Background(), append([]string{"focusflow"}, args...))
	return out.String(), err
}

func decodeLines(t *testing.T, out string) []task.Task {
	t.Helper()
	var tasks []task.Task
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var tk task.Task
		require.NoError(t, json.Unmarshal([]byte(line), &tk), line)
		tasks = append(tasks, tk)
	}
	return tasks
}

func TestTaskAdd(t *testing.T) {
	app := emptyApp(t)

	out, err := runCmd(t, app, "task", "add", "--title", "  Ship release ", "--priority", "high", "--minutes", "40")
	require.NoError(t, err)

	var added task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, "Ship release", added.Title)
	assert.Equal(t, task.PriorityHigh, added.Priority)
	assert.Equal(t, 40, added.TimeAllocation)

	_, ok := app.Tasks.Get(added.ID)
	assert.True(t, ok)
}

func TestTaskAdd_Defaults(t *testing.T) {
	app := emptyApp(t)

	out, err := runCmd(t, app, "task", "add", "-t", "Defaults")
	require.NoError(t, err)

	var added task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, task.PriorityMedium, added.Priority)
	assert.Equal(t, 25, added.TimeAllocation)
}

func TestTaskAdd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"blank title", []string{"--title", "   "}},
		{"minutes too high", []string{"--title", "x", "--minutes", "500"}},
		{"unknown priority", []string{"--title", "x", "--priority", "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := emptyApp(t)
			_, err := runCmd(t, app, append([]string{"task", "add"}, tt.args...)...)
			require.Error(t, err)
			assert.Empty(t, app.Tasks.Tasks())
		})
	}
}

func TestTaskList(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	tasks := app.Tasks.Tasks()
	done := tasks[0]
	app.Tasks.SetCurrentTask(&done)
	require.NoError(t, app.Tasks.CompleteCurrent(ctx))

	t.Run("hides completed", func(t *testing.T) {
		out, err := runCmd(t, app, "task", "ls")
		require.NoError(t, err)
		got := decodeLines(t, out)
		assert.Len(t, got, 4)
		for _, tk := range got {
			assert.NotEqual(t, done.ID, tk.ID)
		}
	})

	t.Run("all", func(t *testing.T) {
		out, err := runCmd(t, app, "task", "ls", "--all")
		require.NoError(t, err)
		assert.Len(t, decodeLines(t, out), 5)
	})

	t.Run("match", func(t *testing.T) {
		out, err := runCmd(t, app, "task", "ls", "--match", "*BUG*")
		require.NoError(t, err)
		got := decodeLines(t, out)
		require.Len(t, got, 1)
		assert.Equal(t, "Fix critical bug in login flow", got[0].Title)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := runCmd(t, app, "task", "ls", "--match", "[")
		require.Error(t, err)
	})
}

func TestTaskEdit(t *testing.T) {
	app := emptyApp(t)
	added, err := app.Tasks.Add(context.Background(), task.Draft{Title: "draft", Priority: task.PriorityLow, TimeAllocation: 10})
	require.NoError(t, err)

	out, err := runCmd(t, app, "task", "edit", "--minutes", "50", added.ID)
	require.NoError(t, err)

	var updated task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &updated))
	assert.Equal(t, added.ID, updated.ID)
	assert.Equal(t, "draft", updated.Title)
	assert.Equal(t, 50, updated.TimeAllocation)

	got, _ := app.Tasks.Get(added.ID)
	assert.Equal(t, 50, got.TimeAllocation)
}

func TestTaskEdit_UnknownIDSuggests(t *testing.T) {
	app := emptyApp(t)
	added, err := app.Tasks.Add(context.Background(), task.Draft{Title: "x", Priority: task.PriorityLow, TimeAllocation: 10})
	require.NoError(t, err)

	_, err = runCmd(t, app, "task", "edit", "--minutes", "20", added.ID[:8])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task")
	assert.Contains(t, err.Error(), added.ID)
}

func TestTaskRemoveAndDone(t *testing.T) {
	app := emptyApp(t)
	ctx := context.Background()
	a, _ := app.Tasks.Add(ctx, task.Draft{Title: "a", Priority: task.PriorityLow, TimeAllocation: 10})
	b, _ := app.Tasks.Add(ctx, task.Draft{Title: "b", Priority: task.PriorityLow, TimeAllocation: 10})

	out, err := runCmd(t, app, "task", "rm", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "deleted\n", out)
	_, ok := app.Tasks.Get(a.ID)
	assert.False(t, ok)

	out, err = runCmd(t, app, "task", "done", b.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed\n", out)

	got, _ := app.Tasks.Get(b.ID)
	assert.True(t, got.Completed)
	_, focused := app.Tasks.Current()
	assert.False(t, focused)

	_, err = runCmd(t, app, "task", "rm")
	require.Error(t, err)
}

func TestTaskImport(t *testing.T) {
	dir := t.TempDir()

	t.Run("adds all drafts", func(t *testing.T) {
		app := emptyApp(t)
		path := filepath.Join(dir, "ok.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"title": "Plan sprint", "timeAllocation": 30},
			{"title": "Triage", "priority": "high", "description": "inbox"}
		]`), 0o644))

		out, err := runCmd(t, app, "task", "import", "-f", path)
		require.NoError(t, err)

		got := decodeLines(t, out)
		require.Len(t, got, 2)
		assert.Equal(t, task.PriorityMedium, got[0].Priority)
		assert.Equal(t, 30, got[0].TimeAllocation)
		assert.Equal(t, 25, got[1].TimeAllocation)
		assert.Len(t, app.Tasks.Tasks(), 2)
	})

	t.Run("rejects the batch on any invalid draft", func(t *testing.T) {
		app := emptyApp(t)
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"title": "fine"},
			{"title": ""}
		]`), 0o644))

		_, err := runCmd(t, app, "task", "import", "-f", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "draft 1")
		assert.Empty(t, app.Tasks.Tasks())
	})
}

func TestChoose(t *testing.T) {
	t.Run("seed pair", func(t *testing.T) {
		app := newTestApp(t)
		out, err := runCmd(t, app, "choose")
		require.NoError(t, err)

		var pair []task.Task
		require.NoError(t, json.Unmarshal([]byte(out), &pair))
		require.Len(t, pair, 2)
		assert.Equal(t, "Fix critical bug in login flow", pair[0].Title)
		assert.Equal(t, "Prepare for client presentation", pair[1].Title)
	})

	t.Run("no pair", func(t *testing.T) {
		app := emptyApp(t)
		out, err := runCmd(t, app, "choose")
		require.NoError(t, err)
		assert.Equal(t, "null\n", out)
	})

	t.Run("pick out of range", func(t *testing.T) {
		app := newTestApp(t)
		_, err := runCmd(t, app, "choose", "--pick", "3")
		require.Error(t, err)
	})
}

func TestConfigShow(t *testing.T) {
	app := newTestApp(t)

	out, err := runCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "driver: memory")

	out, err = runCmd(t, app, "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"driver": "memory"`)
}

func newTestFocusCmd(app *focusflow.App, in io.Reader) (*FocusCmd, *timertest.Ticker) {
	ticker := timertest.New()
	cmd := NewFocusCmd(&Flags{}, app)
	cmd.in = in
	cmd.ticker = ticker
	return cmd, ticker
}

func TestFocus_Complete(t *testing.T) {
	app := emptyApp(t)
	tk, err := app.Tasks.Add(context.Background(), task.Draft{Title: "deep work", Priority: task.PriorityHigh, TimeAllocation: 5})
	require.NoError(t, err)

	cmd, ticker := newTestFocusCmd(app, strings.NewReader("c\n"))

	var out bytes.Buffer
	require.NoError(t, cmd.Run(context.Background(), &out, tk))

	got, _ := app.Tasks.Get(tk.ID)
	assert.True(t, got.Completed)
	assert.Contains(t, out.String(), "completed deep work")
	assert.Equal(t, 0, ticker.Active())
}

func TestFocus_Skip(t *testing.T) {
	app := emptyApp(t)
	tk, err := app.Tasks.Add(context.Background(), task.Draft{Title: "later", Priority: task.PriorityLow, TimeAllocation: 5})
	require.NoError(t, err)

	cmd, ticker := newTestFocusCmd(app, strings.NewReader("p\ns\n"))

	var out bytes.Buffer
	require.NoError(t, cmd.Run(context.Background(), &out, tk))

	got, _ := app.Tasks.Get(tk.ID)
	assert.False(t, got.Completed)
	_, focused := app.Tasks.Current()
	assert.False(t, focused)
	assert.Contains(t, out.String(), "paused")
	assert.Contains(t, out.String(), "skipped later")
	assert.Equal(t, 0, ticker.Active())
}

func TestFocus_PausedThenEOF(t *testing.T) {
	app := emptyApp(t)
	tk, err := app.Tasks.Add(context.Background(), task.Draft{Title: "reading", Priority: task.PriorityMedium, TimeAllocation: 5})
	require.NoError(t, err)

	cmd, ticker := newTestFocusCmd(app, strings.NewReader("p\n"))

	var out bytes.Buffer
	errc := make(chan error, 1)
	go func() {
		errc <- cmd.Run(context.Background(), &out, tk)
	}()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("focus did not exit when input closed while paused")
	}

	got, _ := app.Tasks.Get(tk.ID)
	assert.False(t, got.Completed)
	_, focused := app.Tasks.Current()
	assert.False(t, focused)
	assert.Contains(t, out.String(), "skipped reading")
	assert.Equal(t, 0, ticker.Active())
}

func TestFocus_Expires(t *testing.T) {
	app := emptyApp(t)
	tk, err := app.Tasks.Add(context.Background(), task.Draft{Title: "sprint", Priority: task.PriorityLow, TimeAllocation: 5})
	require.NoError(t, err)

	pr, pw := io.Pipe()
	cmd, ticker := newTestFocusCmd(app, pr)

	var out bytes.Buffer
	errc := make(chan error, 1)
	go func() {
		errc <- cmd.Run(context.Background(), &out, tk)
	}()

	require.Eventually(t, func() bool { return ticker.Active() == 1 }, time.Second, time.Millisecond)
	ticker.Fire(tk.Seconds())
	require.Eventually(t, func() bool { return ticker.Active() == 0 }, time.Second, time.Millisecond)

	require.NoError(t, pw.Close())
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("focus did not exit after expiry")
	}

	assert.Contains(t, out.String(), "Time's up!")
	assert.Contains(t, out.String(), timer.Expired.String()+" 00:00 sprint")
}
