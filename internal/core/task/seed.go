package task

import "time"

// Seed returns the default task set used when no snapshot can be read.
// newID is called once per task.
func Seed(now time.Time, newID func() string) []Task {
	drafts := []Draft{
		{
			Title:          "Update project documentation",
			Description:    "Review and update the project documentation with recent changes.",
			Priority:       PriorityMedium,
			TimeAllocation: 25,
		},
		{
			Title:          "Fix critical bug in login flow",
			Description:    "Users are unable to log in on mobile devices. Investigate and fix the issue.",
			Priority:       PriorityHigh,
			TimeAllocation: 45,
		},
		{
			Title:          "Prepare for client presentation",
			Description:    "Create slides and talking points for the upcoming client presentation.",
			Priority:       PriorityHigh,
			TimeAllocation: 60,
		},
		{
			Title:          "Review pull requests",
			Description:    "Review and provide feedback on pending pull requests from the team.",
			Priority:       PriorityMedium,
			TimeAllocation: 30,
		},
		{
			Title:          "Check emails",
			Description:    "Respond to important emails and clear inbox.",
			Priority:       PriorityLow,
			TimeAllocation: 15,
		},
	}

	tasks := make([]Task, len(drafts))
	for i, d := range drafts {
		tasks[i] = Task{ID: newID(), CreatedAt: now}.Apply(d)
	}
	return tasks
}
