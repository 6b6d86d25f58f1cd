package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
	"github.com/hay-kot/focusflow/internal/core/timer"
	"github.com/hay-kot/focusflow/internal/focusflow"
)

const emptyChoiceTitle = "No Tasks Available"

// renderChoice renders the two choice cards, or the empty state when no
// pair exists.
func renderChoice(pair task.Pair, ok bool, cursor, width int) string {
	if !ok {
		title := styles.TitleStyle.Render(emptyChoiceTitle)
		hint := styles.TextMutedStyle.Render("Add at least two incomplete tasks to choose between. Press a to add one.")
		return lipgloss.JoinVertical(lipgloss.Center, title, "", hint)
	}

	cardWidth := max((width-6)/2, 24)
	cards := make([]string, 2)
	for i, t := range pair {
		style := styles.CardStyle
		if i == cursor {
			style = styles.CardSelectedStyle
		}
		cards[i] = style.Width(cardWidth).Render(renderCard(t, i+1, cardWidth-4))
	}

	header := styles.TitleStyle.Render("What will you focus on?")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards[0], "  ", cards[1]),
	)
}

func renderCard(t task.Task, n, width int) string {
	lines := []string{
		styles.TextMutedStyle.Render(string(rune('0'+n))) + "  " + styles.PriorityBadge(t.Priority),
		"",
		styles.TitleStyle.Width(width).Render(t.Title),
		styles.TextMutedStyle.Render(styles.IconClock + " " + task.FormatMinutes(t.TimeAllocation)),
	}

	if desc := firstLine(t.Description); desc != "" {
		lines = append(lines, "", styles.TextMutedStyle.Width(width).Render(desc))
	}

	return strings.Join(lines, "\n")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// renderFocus renders the countdown for the session's task.
func renderFocus(s *focusflow.FocusSession, bar progress.Model, description string) string {
	t, ok := s.Task()
	if !ok {
		return ""
	}

	clockStyle := styles.ClockStyle
	status := styles.IconRunning + " focusing"
	switch s.State() {
	case timer.Paused:
		clockStyle = styles.ClockPausedStyle
		status = styles.IconPaused + " paused"
	case timer.Expired:
		status = ""
	}

	parts := []string{
		styles.PriorityBadge(t.Priority) + "  " + styles.TextMutedStyle.Render(task.FormatMinutes(t.TimeAllocation)),
		styles.TitleStyle.Render(t.Title),
		"",
		clockStyle.Render(s.Display()),
		bar.ViewAs(s.Progress() / 100),
	}

	if s.State() == timer.Expired {
		parts = append(parts, "", styles.ExpiredBannerStyle.Render("Time's up!"),
			styles.TextMutedStyle.Render("Press c to complete the task or s to skip."))
	} else {
		parts = append(parts, styles.TextMutedStyle.Render(status))
	}

	if description != "" {
		parts = append(parts, "", description)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// descriptionRenderer renders task descriptions as markdown, caching the
// last result since the focus view redraws every second.
type descriptionRenderer struct {
	enabled  bool
	width    int
	renderer *glamour.TermRenderer
	lastKey  string
	lastOut  string
}

func newDescriptionRenderer(enabled bool) *descriptionRenderer {
	return &descriptionRenderer{enabled: enabled}
}

func (d *descriptionRenderer) SetWidth(width int) {
	if width == d.width {
		return
	}
	d.width = width
	d.renderer = nil
	d.lastKey = ""
}

func (d *descriptionRenderer) Render(markdown string) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	if !d.enabled {
		return styles.TextMutedStyle.Render(markdown)
	}
	if markdown == d.lastKey {
		return d.lastOut
	}

	if d.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle()),
			glamour.WithWordWrap(max(d.width, 20)),
		)
		if err != nil {
			log.Warn().Err(err).Msg("markdown renderer unavailable")
			d.enabled = false
			return styles.TextMutedStyle.Render(markdown)
		}
		d.renderer = r
	}

	out, err := d.renderer.Render(markdown)
	if err != nil {
		log.Debug().Err(err).Msg("render description")
		out = markdown
	}

	d.lastKey = markdown
	d.lastOut = strings.Trim(out, "\n")
	return d.lastOut
}
