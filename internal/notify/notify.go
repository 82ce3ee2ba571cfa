// Package notify is the platform notification surface. Implementations
// are polymorphic over supported and unsupported environments: on an
// unsupported platform every operation is a silent no-op and the
// scheduler keeps running without a visible side effect.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/remindd/internal/model"
)

var ErrPermissionDenied = errors.New("notify: permission denied")

type Notification struct {
	TaskID string
	Title  string
	Body   string
}

type Notifier interface {
	Supported() bool
	RequestPermission(ctx context.Context) error
	Show(ctx context.Context, n Notification) error
}

// ForTask builds the reminder notification for a recurring task.
func ForTask(task model.Task) Notification {
	body := task.Title
	if task.Recurring != nil && task.Recurring.Time != "" {
		body = fmt.Sprintf("%s - Scheduled for %s", task.Title, task.Recurring.Time)
	}
	return Notification{
		TaskID: task.ID,
		Title:  "Task Reminder",
		Body:   body,
	}
}

// Noop serves environments without a notification capability.
type Noop struct{}

func (Noop) Supported() bool { return false }

func (Noop) RequestPermission(context.Context) error { return nil }

func (Noop) Show(context.Context, Notification) error { return nil }
