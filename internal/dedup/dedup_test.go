package dedup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/remindd/internal/sessionstore"
)

func TestFiresOncePerCalendarDay(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 3, 0, 0, time.UTC) // Monday 09:03
	clock := func() time.Time { return now }
	d := New(sessionstore.NewMemoryWithClock(clock), clock, DefaultTTL)
	ctx := context.Background()

	if !d.ShouldFire(ctx, "task-1") {
		t.Fatal("first check of the day must fire")
	}
	if err := d.MarkFired(ctx, "task-1"); err != nil {
		t.Fatalf("mark fired: %v", err)
	}

	// Subsequent poll cycles on the same day are suppressed.
	for _, advance := range []time.Duration{time.Minute, 2 * time.Minute, 5 * time.Hour} {
		now = now.Add(advance)
		if d.ShouldFire(ctx, "task-1") {
			t.Fatalf("must not fire again on the same day (at %s)", now.Format(time.Kitchen))
		}
	}

	// Other tasks are unaffected.
	if !d.ShouldFire(ctx, "task-2") {
		t.Fatal("dedup must be scoped per task")
	}
}

func TestFiresAgainNextDay(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 3, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	d := New(sessionstore.NewMemoryWithClock(clock), clock, DefaultTTL)
	ctx := context.Background()

	_ = d.MarkFired(ctx, "task-1")
	if d.ShouldFire(ctx, "task-1") {
		t.Fatal("must not fire twice on Monday")
	}

	now = now.Add(24 * time.Hour) // Tuesday 09:03
	if !d.ShouldFire(ctx, "task-1") {
		t.Fatal("must fire again the next calendar day")
	}
}

func TestKeyRollsOverAtMidnight(t *testing.T) {
	now := time.Date(2026, 3, 9, 23, 58, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	d := New(sessionstore.NewMemoryWithClock(clock), clock, DefaultTTL)

	before := d.Key("task-1")
	now = now.Add(4 * time.Minute)
	after := d.Key("task-1")
	if before == after {
		t.Fatalf("key must change across midnight: %q", before)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("backend down")
}
func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("backend down")
}
func (failingStore) Remove(context.Context, string) error {
	return errors.New("backend down")
}

func TestStoreReadErrorsFailClosed(t *testing.T) {
	d := New(failingStore{}, nil, DefaultTTL)
	if d.ShouldFire(context.Background(), "task-1") {
		t.Fatal("store errors must suppress firing, not duplicate it")
	}
	if err := d.MarkFired(context.Background(), "task-1"); err == nil {
		t.Fatal("write errors must be reported to the caller")
	}
}
