package match

import "time"

const upcomingHorizon = 24 * time.Hour

// IsOverdue reports whether an incomplete task's deadline has passed.
// A missing deadline or a completed task is never overdue.
func IsOverdue(deadline *time.Time, completed bool, now time.Time) bool {
	if deadline == nil || completed {
		return false
	}
	return deadline.Before(now)
}

// IsUpcoming reports whether the deadline falls within the next 24
// hours. Both boundaries are inclusive: a deadline exactly at now, or
// exactly 24h out, counts.
func IsUpcoming(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return false
	}
	diff := deadline.Sub(now)
	return diff >= 0 && diff <= upcomingHorizon
}

// IsDueToday reports whether the deadline falls on the same local
// calendar day as now, completion aside.
func IsDueToday(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return false
	}
	y1, m1, d1 := deadline.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
