// Package components provides reusable TUI components.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
)

// ConfirmDelete asks before a task is deleted. It resolves once, to either
// Confirmed or Cancelled; further keys are ignored.
type ConfirmDelete struct {
	target   task.Task
	resolved bool
	accepted bool
}

// NewConfirmDelete creates a confirmation for deleting t.
func NewConfirmDelete(t task.Task) ConfirmDelete {
	return ConfirmDelete{target: t}
}

// Target returns the task the confirmation is about.
func (m ConfirmDelete) Target() task.Task {
	return m.target
}

// Update handles y/enter to confirm and n/esc/q to cancel.
func (m ConfirmDelete) Update(msg tea.Msg) (ConfirmDelete, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.resolved {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.resolved, m.accepted = true, true
	case "n", "N", "esc", "q":
		m.resolved = true
	}

	return m, nil
}

// View renders the dialog.
func (m ConfirmDelete) View() string {
	meta := styles.PriorityBadge(m.target.Priority) + " " +
		styles.TextMutedStyle.Render(task.FormatMinutes(m.target.TimeAllocation))

	lines := []string{
		styles.ModalTitleStyle.Render("Delete task?"),
		"",
		m.target.Title,
		meta,
	}
	if m.target.Completed {
		lines = append(lines, styles.TextMutedStyle.Render("completed"))
	}
	lines = append(lines, "", styles.ModalHelpStyle.Render("y delete • n keep"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Confirmed reports whether the user accepted the deletion.
func (m ConfirmDelete) Confirmed() bool {
	return m.resolved && m.accepted
}

// Cancelled reports whether the user declined.
func (m ConfirmDelete) Cancelled() bool {
	return m.resolved && !m.accepted
}
