package model

import (
	"errors"
	"fmt"
)

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
)

var (
	ErrInvalidRecurrenceType = errors.New("model: invalid recurrence type")
	ErrInvalidWeekday        = errors.New("model: day_of_week must be in 0..6")
	ErrInvalidMonthday       = errors.New("model: day_of_month must be in 1..31")
)

func (t RecurrenceType) IsValid() bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// RecurrenceRule describes when a task should remind its owner.
// Time is a local "HH:MM" clock; a rule without a time never fires.
// DayOfWeek uses 0=Sunday..6=Saturday and only gates weekly rules.
// DayOfMonth is carried for the store schema but not consulted when
// matching: monthly rules fire on the time window alone, any day.
type RecurrenceRule struct {
	Type       RecurrenceType `json:"type"`
	Time       string         `json:"time,omitempty"`
	DayOfWeek  *int           `json:"day_of_week,omitempty"`
	DayOfMonth *int           `json:"day_of_month,omitempty"`
}

func (r RecurrenceRule) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrenceType, r.Type)
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < 0 || *r.DayOfWeek > 6) {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, *r.DayOfWeek)
	}
	if r.DayOfMonth != nil && (*r.DayOfMonth < 1 || *r.DayOfMonth > 31) {
		return fmt.Errorf("%w: %d", ErrInvalidMonthday, *r.DayOfMonth)
	}
	return nil
}
