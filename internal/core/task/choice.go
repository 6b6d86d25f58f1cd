package task

import "slices"

// Pair is the two candidate tasks offered to the user, highest priority first.
type Pair [2]Task

// Choose picks the choice pair from tasks. Completed tasks are ignored and
// the rest are ordered by priority, descending. The sort is stable, so tasks
// of equal priority keep their insertion order. ok is false when fewer than
// two incomplete tasks exist.
func Choose(tasks []Task) (pair Pair, ok bool) {
	incomplete := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			incomplete = append(incomplete, t)
		}
	}

	if len(incomplete) < 2 {
		return Pair{}, false
	}

	slices.SortStableFunc(incomplete, func(a, b Task) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})

	return Pair{incomplete[0], incomplete[1]}, true
}
