package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
)

// TaskList is the scrollable list shown on the Tasks tab. It only tracks
// the cursor; the task store stays the owner of the data.
type TaskList struct {
	items         []task.Task
	showCompleted bool
	cursor        int
	scroll        int
	width         int
	height        int
}

// NewTaskList creates a task list.
func NewTaskList(showCompleted bool) *TaskList {
	return &TaskList{showCompleted: showCompleted}
}

// SetTasks replaces the rows, keeping the cursor on the same task id when
// it still exists.
func (l *TaskList) SetTasks(tasks []task.Task) {
	selectedID := ""
	if sel, ok := l.Selected(); ok {
		selectedID = sel.ID
	}

	l.items = l.items[:0]
	for _, t := range tasks {
		if t.Completed && !l.showCompleted {
			continue
		}
		l.items = append(l.items, t)
	}

	l.cursor = min(l.cursor, max(len(l.items)-1, 0))
	for i, t := range l.items {
		if t.ID == selectedID {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

// SetSize sets the area the list renders into.
func (l *TaskList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// Selected returns the task under the cursor.
func (l *TaskList) Selected() (task.Task, bool) {
	if len(l.items) == 0 {
		return task.Task{}, false
	}
	return l.items[l.cursor], true
}

// Len returns the number of visible rows.
func (l *TaskList) Len() int {
	return len(l.items)
}

func (l *TaskList) Up() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

func (l *TaskList) Down() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

func (l *TaskList) visibleRows() int {
	if l.height <= 0 {
		return len(l.items)
	}
	return max(l.height, 1)
}

func (l *TaskList) ensureVisible() {
	rows := l.visibleRows()
	if l.cursor < l.scroll {
		l.scroll = l.cursor
	}
	if l.cursor >= l.scroll+rows {
		l.scroll = l.cursor - rows + 1
	}
	l.scroll = max(min(l.scroll, len(l.items)-rows), 0)
}

// View renders the list.
func (l *TaskList) View() string {
	if len(l.items) == 0 {
		return styles.TextMutedStyle.Render("No tasks yet. Press a to add one.")
	}

	end := min(l.scroll+l.visibleRows(), len(l.items))
	rows := make([]string, 0, end-l.scroll)
	for i := l.scroll; i < end; i++ {
		rows = append(rows, l.renderRow(l.items[i], i == l.cursor))
	}
	return strings.Join(rows, "\n")
}

func (l *TaskList) renderRow(t task.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.SelectedStyle.Render(styles.IconCursor) + " "
	}

	icon := styles.TextMutedStyle.Render(styles.IconPending)
	title := t.Title
	switch {
	case t.Completed:
		icon = styles.TextSuccessStyle.Render(styles.IconCheck)
		title = styles.CompletedStyle.Render(title)
	case selected:
		title = styles.SelectedStyle.Render(title)
	}

	meta := fmt.Sprintf("%s  %s",
		styles.PriorityBadge(t.Priority),
		styles.TextMutedStyle.Render(task.FormatMinutes(t.TimeAllocation)),
	)

	left := cursor + icon + " " + title
	if l.width <= 0 {
		return left + "  " + meta
	}

	gap := max(l.width-lipgloss.Width(left)-lipgloss.Width(meta), 2)
	return left + strings.Repeat(" ", gap) + meta
}
