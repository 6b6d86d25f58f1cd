// Package taskform builds the huh form used to create and edit tasks, both
// from the CLI and embedded in the TUI.
package taskform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
)

// Values are the raw form inputs. Minutes is kept as text so the input
// field can validate partial entries.
type Values struct {
	Title       string
	Description string
	Priority    task.Priority
	Minutes     string
}

// FromDraft prefills form values from d.
func FromDraft(d task.Draft) *Values {
	v := &Values{
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
	}
	if d.TimeAllocation > 0 {
		v.Minutes = strconv.Itoa(d.TimeAllocation)
	}
	if !v.Priority.IsValid() {
		v.Priority = task.PriorityMedium
	}
	return v
}

// Draft converts the values into a normalized, validated draft.
func (v *Values) Draft() (task.Draft, error) {
	minutes, err := parseMinutes(v.Minutes)
	if err != nil {
		return task.Draft{}, err
	}

	d := task.Draft{
		Title:          v.Title,
		Description:    v.Description,
		Priority:       v.Priority,
		TimeAllocation: minutes,
	}.Normalize()

	if err := task.ValidateDraft(d); err != nil {
		return task.Draft{}, err
	}
	return d, nil
}

// New builds a single-group form bound to v.
func New(v *Values) *huh.Form {
	options := make([]huh.Option[task.Priority], 0, len(task.Priorities))
	for _, p := range task.Priorities {
		options = append(options, huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("What needs doing?").
				Validate(task.ValidateTitle).
				Value(&v.Title),
			huh.NewText().
				Key("description").
				Title("Description").
				Description("Markdown is rendered in the focus view").
				Value(&v.Description),
			huh.NewSelect[task.Priority]().
				Key("priority").
				Title("Priority").
				Options(options...).
				Value(&v.Priority),
			huh.NewInput().
				Key("minutes").
				Title("Time allocation").
				Description(fmt.Sprintf("Minutes, %d-%d", task.MinTimeAllocation, task.MaxTimeAllocation)).
				Validate(ValidateMinutes).
				Value(&v.Minutes),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(true)
}

// ValidateMinutes checks a minutes field as typed.
func ValidateMinutes(s string) error {
	_, err := parseMinutes(s)
	return err
}

func parseMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("time allocation must be a whole number of minutes")
	}
	if err := task.ValidateTimeAllocation(n); err != nil {
		return 0, err
	}
	return n, nil
}
