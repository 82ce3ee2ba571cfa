package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

var (
	ErrTitleRequired  = errors.New("model: task title is required")
	ErrTitleTooLong   = errors.New("model: task title exceeds 200 characters")
	ErrDescTooLong    = errors.New("model: task description exceeds 1000 characters")
	ErrUpdatedBefore  = errors.New("model: updated_at is before created_at")
	ErrNothingToApply = errors.New("model: update contains no fields")
)

// Task mirrors the wire representation owned by the external task store.
// The engine only reads tasks and requests mutations through the store
// client; it never persists them.
type Task struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Completed   bool            `json:"completed"`
	Deadline    *time.Time      `json:"deadline"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Recurring   *RecurrenceRule `json:"recurring,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if err := validateDescription(t.Description); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if !t.UpdatedAt.IsZero() && t.UpdatedAt.Before(t.CreatedAt) {
		return ErrUpdatedBefore
	}
	if t.Recurring != nil {
		if err := t.Recurring.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TaskCreate is the payload for creating a task in the external store.
type TaskCreate struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	Recurring   *RecurrenceRule `json:"recurring,omitempty"`
}

func (c TaskCreate) Validate() error {
	if err := validateTitle(c.Title); err != nil {
		return err
	}
	if err := validateDescription(c.Description); err != nil {
		return err
	}
	if c.Recurring != nil {
		if err := c.Recurring.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TaskUpdate is a partial update; nil fields are left untouched by the
// store.
type TaskUpdate struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	Recurring   *RecurrenceRule `json:"recurring,omitempty"`
}

func (u TaskUpdate) Validate() error {
	if u.Title == nil && u.Description == nil && u.Deadline == nil && u.Recurring == nil {
		return ErrNothingToApply
	}
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := validateDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.Recurring != nil {
		if err := u.Recurring.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if n := utf8.RuneCountInString(title); n > TitleMaxLen {
		return fmt.Errorf("%w: %d", ErrTitleTooLong, n)
	}
	return nil
}

func validateDescription(desc string) error {
	if n := utf8.RuneCountInString(desc); n > DescriptionMaxLen {
		return fmt.Errorf("%w: %d", ErrDescTooLong, n)
	}
	return nil
}

// TasksResponse is the list envelope returned by the external store.
type TasksResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// TaskStats is the derived summary served by the stats endpoint.
type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
	Overdue    int `json:"overdue"`
	DueToday   int `json:"due_today"`
	Upcoming   int `json:"upcoming_24h"`
	NoDeadline int `json:"no_deadline"`
}
