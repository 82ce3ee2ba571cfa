package sessionstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("sessionstore: not found")

// Store is the local ephemeral key-value surface used for notification
// dedup records. Values are plain strings; expiry is by-convention via
// the ttl passed to Set (ttl <= 0 means no expiry). State kept here is
// per-device and best-effort, never synchronized with the task store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
