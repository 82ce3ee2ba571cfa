package match

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/remindd/internal/model"
)

// FiringWindowMinutes is the symmetric tolerance around a rule's target
// time-of-day during which a match is accepted. A rule can match on
// several consecutive poll cycles inside the window; deduplication is
// what prevents repeat alerts.
const FiringWindowMinutes = 5

var ErrBadClock = errors.New("match: invalid HH:MM clock value")

// ParseClock parses a local "HH:MM" value into minutes of day.
func ParseClock(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, raw)
	}
	return hour*60 + minute, nil
}

// Matches decides whether now falls inside the rule's firing window.
//
// Weekly rules require day_of_week to be set and equal to the current
// local weekday; a weekly rule without one never matches. A rule with
// no time component never matches either: there is no unconditional
// daily or monthly fire without a time-of-day anchor. Monthly rules
// apply the same day-independent time check as daily rules; day_of_month
// is not consulted. Malformed time values fail closed.
func Matches(rule *model.RecurrenceRule, now time.Time) bool {
	if rule == nil || !rule.Type.IsValid() {
		return false
	}

	if rule.Type == model.RecurrenceWeekly {
		if rule.DayOfWeek == nil || *rule.DayOfWeek != int(now.Weekday()) {
			return false
		}
	}

	if rule.Time == "" {
		return false
	}
	target, err := ParseClock(rule.Time)
	if err != nil {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	diff := current - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= FiringWindowMinutes
}
