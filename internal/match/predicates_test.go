package match

import (
	"testing"
	"time"
)

func timePtr(v time.Time) *time.Time { return &v }

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if IsOverdue(nil, false, now) {
		t.Fatal("nil deadline must never be overdue")
	}
	if IsOverdue(timePtr(now.Add(-time.Hour)), true, now) {
		t.Fatal("completed task must never be overdue")
	}
	if !IsOverdue(timePtr(now.Add(-time.Minute)), false, now) {
		t.Fatal("past deadline on incomplete task must be overdue")
	}
	if IsOverdue(timePtr(now), false, now) {
		t.Fatal("deadline exactly at now is not yet overdue")
	}
	if IsOverdue(timePtr(now.Add(time.Hour)), false, now) {
		t.Fatal("future deadline must not be overdue")
	}
}

func TestIsUpcomingBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if IsUpcoming(nil, now) {
		t.Fatal("nil deadline must never be upcoming")
	}
	if !IsUpcoming(timePtr(now), now) {
		t.Fatal("deadline exactly at now is upcoming (inclusive)")
	}
	if !IsUpcoming(timePtr(now.Add(24*time.Hour)), now) {
		t.Fatal("deadline exactly 24h out is upcoming (inclusive)")
	}
	if IsUpcoming(timePtr(now.Add(24*time.Hour+time.Second)), now) {
		t.Fatal("deadline past 24h must not be upcoming")
	}
	if IsUpcoming(timePtr(now.Add(-time.Second)), now) {
		t.Fatal("past deadline must not be upcoming")
	}
}

func TestNoSpecialStatusWindow(t *testing.T) {
	// A deadline further than 24h out is neither overdue nor upcoming.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := timePtr(now.Add(48 * time.Hour))

	if IsOverdue(deadline, false, now) || IsUpcoming(deadline, now) {
		t.Fatal("deadline 48h out must have no special status")
	}
}

func TestIsDueToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	if !IsDueToday(timePtr(time.Date(2026, 3, 10, 0, 15, 0, 0, time.UTC)), now) {
		t.Fatal("same calendar day must be due today")
	}
	if IsDueToday(timePtr(time.Date(2026, 3, 11, 0, 15, 0, 0, time.UTC)), now) {
		t.Fatal("next calendar day must not be due today")
	}
	if IsDueToday(nil, now) {
		t.Fatal("nil deadline must not be due today")
	}
}
