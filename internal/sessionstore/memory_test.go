package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemorySetGetRemove(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	if err := store.Set(ctx, "k", "shown", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil || got != "shown" {
		t.Fatalf("get: value=%q err=%v", got, err)
	}

	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got: %v", err)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	if err := store.Set(ctx, "k", "shown", 24*time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(23 * time.Hour)
	if _, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("expected value before expiry, got: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got: %v", err)
	}
}

func TestMemoryPurge(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	_ = store.Set(ctx, "expiring", "1", time.Hour)
	_ = store.Set(ctx, "keeper", "1", 0)

	now = now.Add(2 * time.Hour)
	if dropped := store.Purge(); dropped != 1 {
		t.Fatalf("expected 1 purged entry, got %d", dropped)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", store.Len())
	}
}
