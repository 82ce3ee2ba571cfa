package pipeline

import (
	"testing"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func timePtr(v time.Time) *time.Time { return &v }

func fixtureTasks() []model.Task {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return []model.Task{
		{
			ID:        "a",
			Title:     "Pay rent",
			Completed: false,
			Deadline:  timePtr(testNow.Add(-24 * time.Hour)), // yesterday: overdue
			CreatedAt: created,
		},
		{
			ID:        "b",
			Title:     "Water plants",
			Completed: false,
			Deadline:  nil, // no deadline
			CreatedAt: created.Add(time.Hour),
		},
		{
			ID:        "c",
			Title:     "call dentist",
			Completed: true,
			Deadline:  timePtr(testNow.Add(-48 * time.Hour)), // past but completed
			CreatedAt: created.Add(2 * time.Hour),
		},
		{
			ID:        "d",
			Title:     "Submit report",
			Completed: false,
			Deadline:  timePtr(testNow.Add(12 * time.Hour)), // upcoming
			CreatedAt: created.Add(3 * time.Hour),
		},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []model.Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("unexpected result: got %v want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("unexpected result: got %v want %v", gotIDs, want)
		}
	}
}

func TestFilterOverdueAndNoDeadline(t *testing.T) {
	tasks := fixtureTasks()

	assertIDs(t, Apply(tasks, model.FilterOverdue, model.SortCreatedAsc, "", testNow), "a")
	assertIDs(t, Apply(tasks, model.FilterNoDeadline, model.SortCreatedAsc, "", testNow), "b")
}

func TestFilterCompleteIncompleteUpcoming(t *testing.T) {
	tasks := fixtureTasks()

	assertIDs(t, Apply(tasks, model.FilterComplete, model.SortCreatedAsc, "", testNow), "c")
	assertIDs(t, Apply(tasks, model.FilterIncomplete, model.SortCreatedAsc, "", testNow), "a", "b", "d")
	assertIDs(t, Apply(tasks, model.FilterUpcoming, model.SortCreatedAsc, "", testNow), "d")
}

func TestFilterAllTitleSortIsCaseSensitive(t *testing.T) {
	tasks := fixtureTasks()

	// Byte-wise lexicographic: uppercase letters sort before "call".
	assertIDs(t, Apply(tasks, model.FilterAll, model.SortTitleAsc, "", testNow), "a", "d", "b", "c")
	assertIDs(t, Apply(tasks, model.FilterAll, model.SortTitleDesc, "", testNow), "c", "b", "d", "a")
}

func TestSortStatusIncompleteFirst(t *testing.T) {
	tasks := fixtureTasks()
	got := Apply(tasks, model.FilterAll, model.SortStatus, "", testNow)
	assertIDs(t, got, "a", "b", "d", "c")
}

func TestSortDeadlineNilPolicy(t *testing.T) {
	tasks := fixtureTasks()

	// asc: dated tasks first in deadline order, nil deadlines last.
	assertIDs(t, Apply(tasks, model.FilterAll, model.SortDeadlineAsc, "", testNow), "c", "a", "d", "b")
	assertIDs(t, Apply(tasks, model.FilterAll, model.SortDeadlineDesc, "", testNow), "b", "d", "a", "c")
}

func TestSortStabilityOnEqualCreatedAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "first", Title: "One", CreatedAt: created},
		{ID: "second", Title: "Two", CreatedAt: created},
		{ID: "third", Title: "Three", CreatedAt: created},
	}
	got := Apply(tasks, model.FilterAll, model.SortCreatedAsc, "", testNow)
	assertIDs(t, got, "first", "second", "third")
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	tasks := fixtureTasks()

	assertIDs(t, Apply(tasks, model.FilterAll, model.SortCreatedAsc, "DENTIST", testNow), "c")
	assertIDs(t, Apply(tasks, model.FilterAll, model.SortCreatedAsc, "  ", testNow), "a", "b", "c", "d")
}

func TestSearchMatchesDescription(t *testing.T) {
	tasks := fixtureTasks()
	tasks[1].Description = "Remember the Ficus"

	assertIDs(t, Apply(tasks, model.FilterAll, model.SortCreatedAsc, "ficus", testNow), "b")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := fixtureTasks()
	_ = Apply(tasks, model.FilterAll, model.SortTitleDesc, "", testNow)
	assertIDs(t, tasks, "a", "b", "c", "d")
}

func TestStats(t *testing.T) {
	tasks := fixtureTasks()
	got := Stats(tasks, testNow)

	want := model.TaskStats{
		Total:      4,
		Completed:  1,
		Incomplete: 3,
		Overdue:    1,
		DueToday:   0,
		Upcoming:   1,
		NoDeadline: 1,
	}
	if got != want {
		t.Fatalf("unexpected stats: got %+v want %+v", got, want)
	}
}
