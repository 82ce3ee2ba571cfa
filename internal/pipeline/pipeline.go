package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/remindd/internal/match"
	"github.com/sandeepkv93/remindd/internal/model"
)

// Apply runs filter, then search, then sort over a task collection and
// returns a new slice; the input is never mutated. The order is fixed
// so sorting never has to consider excluded tasks. Applying the same
// filter twice yields the same result.
func Apply(tasks []model.Task, filter model.Filter, sortBy model.Sort, search string, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, filter, now) {
			out = append(out, t)
		}
	}
	out = applySearch(out, search)
	sortTasks(out, sortBy)
	return out
}

// Stats derives the summary counts over the full collection.
func Stats(tasks []model.Task, now time.Time) model.TaskStats {
	stats := model.TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		} else {
			stats.Incomplete++
		}
		if match.IsOverdue(t.Deadline, t.Completed, now) {
			stats.Overdue++
		}
		if match.IsDueToday(t.Deadline, now) {
			stats.DueToday++
		}
		if match.IsUpcoming(t.Deadline, now) {
			stats.Upcoming++
		}
		if t.Deadline == nil {
			stats.NoDeadline++
		}
	}
	return stats
}

func matchesFilter(t model.Task, filter model.Filter, now time.Time) bool {
	switch filter {
	case model.FilterComplete:
		return t.Completed
	case model.FilterIncomplete:
		return !t.Completed
	case model.FilterOverdue:
		return match.IsOverdue(t.Deadline, t.Completed, now)
	case model.FilterUpcoming:
		return match.IsUpcoming(t.Deadline, now) && !t.Completed
	case model.FilterNoDeadline:
		return t.Deadline == nil
	default:
		return true
	}
}

func applySearch(tasks []model.Task, search string) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return tasks
	}
	out := tasks[:0]
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// sortTasks orders in place. All comparators are stable: ties keep the
// original order. Nil deadlines sort after all dated tasks in
// deadline_asc and before them in deadline_desc.
func sortTasks(tasks []model.Task, sortBy model.Sort) {
	switch sortBy {
	case model.SortCreatedAsc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		})
	case model.SortCreatedDesc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[j].CreatedAt.Before(tasks[i].CreatedAt)
		})
	case model.SortTitleAsc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Title < tasks[j].Title
		})
	case model.SortTitleDesc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[j].Title < tasks[i].Title
		})
	case model.SortStatus:
		sort.SliceStable(tasks, func(i, j int) bool {
			return !tasks[i].Completed && tasks[j].Completed
		})
	case model.SortDeadlineAsc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return deadlineLess(tasks[i].Deadline, tasks[j].Deadline)
		})
	case model.SortDeadlineDesc:
		sort.SliceStable(tasks, func(i, j int) bool {
			return deadlineLess(tasks[j].Deadline, tasks[i].Deadline)
		})
	}
}

func deadlineLess(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}
