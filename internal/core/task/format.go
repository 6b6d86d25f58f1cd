package task

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// FormatMinutes renders a duration in minutes as "1h 5m" or "25m".
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// Suggest returns up to limit task IDs closest to the given (unknown) id,
// by edit distance. IDs further than half the input length are dropped.
func Suggest(id string, tasks []Task, limit int) []string {
	type candidate struct {
		id   string
		dist int
	}

	maxDist := max(len(id)/2, 1)

	var candidates []candidate
	for _, t := range tasks {
		d := levenshtein.ComputeDistance(id, t.ID)
		// allow prefix matches of short ids regardless of length
		if len(id) >= 4 && len(t.ID) > len(id) && t.ID[:len(id)] == id {
			d = 0
		}
		if d <= maxDist {
			candidates = append(candidates, candidate{id: t.ID, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	out := make([]string, 0, limit)
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, c.id)
	}
	return out
}
