package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilter = errors.New("model: invalid filter")
	ErrInvalidSort   = errors.New("model: invalid sort")
)

// Filter is a derived classification of tasks, never stored.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterComplete   Filter = "complete"
	FilterIncomplete Filter = "incomplete"
	FilterOverdue    Filter = "overdue"
	FilterUpcoming   Filter = "upcoming"
	FilterNoDeadline Filter = "no-deadline"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterComplete, FilterIncomplete, FilterOverdue, FilterUpcoming, FilterNoDeadline:
		return true
	default:
		return false
	}
}

func ParseFilter(raw string) (Filter, error) {
	if raw == "" {
		return FilterAll, nil
	}
	f := Filter(raw)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

// Sort is a derived ordering of tasks, never stored.
type Sort string

const (
	SortCreatedAsc   Sort = "created_asc"
	SortCreatedDesc  Sort = "created_desc"
	SortTitleAsc     Sort = "title_asc"
	SortTitleDesc    Sort = "title_desc"
	SortStatus       Sort = "status"
	SortDeadlineAsc  Sort = "deadline_asc"
	SortDeadlineDesc Sort = "deadline_desc"
)

func (s Sort) IsValid() bool {
	switch s {
	case SortCreatedAsc, SortCreatedDesc, SortTitleAsc, SortTitleDesc, SortStatus, SortDeadlineAsc, SortDeadlineDesc:
		return true
	default:
		return false
	}
}

func ParseSort(raw string) (Sort, error) {
	if raw == "" {
		return SortCreatedDesc, nil
	}
	s := Sort(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	return s, nil
}
