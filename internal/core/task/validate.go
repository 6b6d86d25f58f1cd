package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Bounds on a task's time allocation, in minutes.
const (
	MinTimeAllocation = 5
	MaxTimeAllocation = 180
)

// ValidateTitle requires a non-blank title.
func ValidateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("task title is required")
	}
	return nil
}

// ValidateTimeAllocation requires minutes within [MinTimeAllocation, MaxTimeAllocation].
func ValidateTimeAllocation(minutes int) error {
	if minutes < MinTimeAllocation || minutes > MaxTimeAllocation {
		return fmt.Errorf("time allocation must be between %d and %d minutes", MinTimeAllocation, MaxTimeAllocation)
	}
	return nil
}

func validatePriority(p Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid priority %q", p)
	}
	return nil
}

// ValidateDraft checks a draft before it is handed to the store. The store
// itself never validates; forms and CLI commands call this first.
// Returns criterio.FieldErrors on failure.
func ValidateDraft(d Draft) error {
	return criterio.ValidateStruct(
		criterio.Run("title", d.Title, ValidateTitle),
		criterio.Run("priority", d.Priority, validatePriority),
		criterio.Run("timeAllocation", d.TimeAllocation, ValidateTimeAllocation),
	)
}

// Normalize trims surrounding whitespace from the draft's text fields.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	return d
}
