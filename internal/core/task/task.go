// Package task defines the task domain model, the choice selector, and the
// persistence port used by the task store.
package task

import (
	"fmt"
	"time"
)

// Priority is the ordinal importance of a task: high > medium > low.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists all priorities, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort weight of the priority (high=3, medium=2, low=1).
// Unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// ParsePriority converts a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority %q: must be one of high, medium, low", s)
	}
	return p, nil
}

// UnmarshalText rejects unknown priorities so that a malformed snapshot
// fails to decode as a whole.
func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Task is a single unit of work. TimeAllocation is in minutes.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Priority       Priority  `json:"priority"`
	TimeAllocation int       `json:"timeAllocation"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Seconds returns the task's allocated focus time in seconds.
func (t Task) Seconds() int {
	return t.TimeAllocation * 60
}

// Draft holds the user-editable fields of a task. The store assigns
// ID, Completed, and CreatedAt when a draft is added.
type Draft struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       Priority `json:"priority"`
	TimeAllocation int      `json:"timeAllocation"`
}

// Draft returns the editable fields of t.
func (t Task) Draft() Draft {
	return Draft{
		Title:          t.Title,
		Description:    t.Description,
		Priority:       t.Priority,
		TimeAllocation: t.TimeAllocation,
	}
}

// Apply returns a copy of t with the draft's fields replacing its own.
// Identity, completion, and creation time are preserved.
func (t Task) Apply(d Draft) Task {
	t.Title = d.Title
	t.Description = d.Description
	t.Priority = d.Priority
	t.TimeAllocation = d.TimeAllocation
	return t
}
