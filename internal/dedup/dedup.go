// Package dedup records which (task, calendar day) reminder pairs have
// already fired, so a recurring task notifies at most once per day no
// matter how many poll cycles land inside its firing window.
package dedup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/remindd/internal/sessionstore"
)

const (
	// DefaultTTL keeps a fired record for a full day; the key itself
	// rolls over at local midnight, so the TTL is cleanup, not the
	// day-boundary mechanism.
	DefaultTTL = 24 * time.Hour

	keyDateLayout = "2006-01-02"
	firedSentinel = "shown"
)

type Deduplicator struct {
	store sessionstore.Store
	now   func() time.Time
	ttl   time.Duration
}

func New(store sessionstore.Store, now func() time.Time, ttl time.Duration) *Deduplicator {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Deduplicator{store: store, now: now, ttl: ttl}
}

// ShouldFire reports whether no reminder has been recorded for the task
// on the current local calendar day. Store read errors fail closed: a
// missed reminder is lower risk than a duplicate storm from a flapping
// backend.
func (d *Deduplicator) ShouldFire(ctx context.Context, taskID string) bool {
	_, err := d.store.Get(ctx, d.Key(taskID))
	return errors.Is(err, sessionstore.ErrNotFound)
}

// MarkFired records the reminder for today; the record expires after
// the TTL so the same task can notify again on its next occurrence day.
func (d *Deduplicator) MarkFired(ctx context.Context, taskID string) error {
	return d.store.Set(ctx, d.Key(taskID), firedSentinel, d.ttl)
}

// Key derives the dedup key for the task and the current local date.
func (d *Deduplicator) Key(taskID string) string {
	return fmt.Sprintf("notification_%s_%s", taskID, d.now().Format(keyDateLayout))
}
