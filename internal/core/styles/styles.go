// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/focusflow/internal/core/task"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Banner is printed above interactive CLI forms.
const Banner = `┏━╸┏━┓┏━╸╻ ╻┏━┓┏━╸╻  ┏━┓╻ ╻
┣╸ ┃ ┃┃  ┃ ┃┗━┓┣╸ ┃  ┃ ┃┃╻┃
╹  ┗━┛┗━╸┗━┛┗━┛╹  ┗━╸┗━┛┗┻┛`

// Style exports.
var (
	// CLI styles.
	BannerStyle        lipgloss.Style
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// TUI shared styles.
	TitleStyle         lipgloss.Style
	TextMutedStyle     lipgloss.Style
	TextSuccessStyle   lipgloss.Style
	TextErrorStyle     lipgloss.Style
	TabActiveStyle     lipgloss.Style
	TabInactiveStyle   lipgloss.Style
	SelectedStyle      lipgloss.Style
	CompletedStyle     lipgloss.Style
	CardStyle          lipgloss.Style
	CardSelectedStyle  lipgloss.Style
	ModalStyle         lipgloss.Style
	ModalTitleStyle    lipgloss.Style
	ModalHelpStyle     lipgloss.Style
	ClockStyle         lipgloss.Style
	ClockPausedStyle   lipgloss.Style
	ExpiredBannerStyle lipgloss.Style
	StatusBarStyle     lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	TextMutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TextSuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	TextErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 2)
	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 2)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CompletedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Strikethrough(true)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(1, 2)
	CardSelectedStyle = CardStyle.
		BorderForeground(ColorPrimary)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	ClockStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ClockPausedStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	ExpiredBannerStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorSuccess).
		Bold(true).
		Padding(0, 2)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		PaddingTop(1)
}

// PriorityColor maps a priority to its palette color: high is the error
// color, medium the warning color, low the primary color.
func PriorityColor(p task.Priority) lipgloss.Color {
	switch p {
	case task.PriorityHigh:
		return ColorError
	case task.PriorityMedium:
		return ColorWarning
	case task.PriorityLow:
		return ColorPrimary
	default:
		return ColorMuted
	}
}

// PriorityBadge renders a priority as a colored label.
func PriorityBadge(p task.Priority) string {
	return lipgloss.NewStyle().
		Foreground(PriorityColor(p)).
		Bold(true).
		Render(string(p))
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)

	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Blurred.Description = t.Blurred.Description.Foreground(ColorMuted)

	return t
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
