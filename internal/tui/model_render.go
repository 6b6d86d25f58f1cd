package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/focusflow/internal/core/styles"
)

// View renders the TUI.
func (m Model) View() string {
	var body string
	var keys helpKeys

	switch {
	case m.state == stateForm && m.form != nil:
		title := "New task"
		if m.formTaskID != "" {
			title = "Edit task"
		}
		body = styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render(title),
			"",
			m.form.View(),
			styles.ModalHelpStyle.Render("esc cancel"),
		))
	case m.state == stateConfirming:
		body = m.confirm.View()
	case m.tab == TabTasks:
		body = m.list.View()
		keys = m.keys.listHelp()
	default:
		if _, focused := m.session.Task(); focused {
			body = renderFocus(m.session, m.bar, m.desc.Render(m.currentDescription()))
			keys = m.keys.focusHelp()
		} else {
			pair, ok := m.store.Choices()
			body = renderChoice(pair, ok, m.choiceCursor, m.width)
			keys = m.keys.choiceHelp()
		}
	}

	sections := []string{m.renderTabs(), "", body}
	if m.status != "" {
		sections = append(sections, styles.StatusBarStyle.Render(m.status))
	}
	if keys.short != nil {
		sections = append(sections, styles.StatusBarStyle.Render(m.help.View(keys)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, t := range []Tab{TabFocus, TabTasks} {
		style := styles.TabInactiveStyle
		if t == m.tab {
			style = styles.TabActiveStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}

	brand := styles.TextMutedStyle.Render("focusflow " + m.build.Version)
	return lipgloss.JoinHorizontal(lipgloss.Center, append(tabs, "  ", brand)...)
}

func (m Model) currentDescription() string {
	t, ok := m.session.Task()
	if !ok {
		return ""
	}
	return t.Description
}
