package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	// ErrAbort can be returned from an AtomicUpdate callback to leave the
	// stored value untouched. AtomicUpdate swallows it and returns nil.
	ErrAbort = errors.New("atomic update aborted")

	// ErrConflict is returned when an atomic update keeps losing the
	// compare-and-set race past the retry budget.
	ErrConflict = errors.New("atomic update conflict")
)

// Event is one change notification delivered to subscribers. Value is nil
// when the path was deleted.
type Event struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// Snapshot maps full paths to their raw JSON values.
type Snapshot map[string]json.RawMessage

// Store is the shared hierarchical key-value tree every device talks to.
// Paths are slash-separated ("orders/{id}", "stats/thermos"). Values are
// JSON documents. All timestamps are epoch milliseconds assigned by
// ServerTime so devices with skewed clocks stay consistent.
type Store interface {
	// Get returns the value at path, or (nil, nil) when absent.
	Get(ctx context.Context, path string) (json.RawMessage, error)

	// List returns every child value under prefix ("orders" yields all
	// "orders/{id}" entries). An empty prefix lists the whole tree.
	List(ctx context.Context, prefix string) (Snapshot, error)

	// Write marshals value and stores it at path.
	Write(ctx context.Context, path string, value any) error

	// WriteTTL is Write with an expiry, used for self-expiring records
	// such as alerts.
	WriteTTL(ctx context.Context, path string, value any, ttl time.Duration) error

	// Update applies a multi-path write. A nil value deletes the path.
	// The batch is applied as a unit but individual paths may still be
	// observed mid-flight by other clients; callers must not rely on it
	// for cross-entity invariants.
	Update(ctx context.Context, values map[string]any) error

	// AtomicUpdate runs fn against the current value (nil when absent)
	// and stores the result, retrying on concurrent modification. This is
	// the only safe way to mutate counters shared between devices.
	AtomicUpdate(ctx context.Context, path string, fn func(current json.RawMessage) (any, error)) error

	// Subscribe delivers an Event for every change under prefix until ctx
	// is cancelled. An empty prefix watches the whole tree.
	Subscribe(ctx context.Context, prefix string) (<-chan Event, error)

	// ServerTime returns the store's clock in epoch milliseconds.
	ServerTime(ctx context.Context) (int64, error)
}

// matchesPrefix reports whether path falls under prefix. An empty prefix
// matches the whole tree.
func matchesPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Decode unmarshals raw into v, treating a nil raw as "absent" and
// returning false without touching v.
func Decode(raw json.RawMessage, v any) (bool, error) {
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}
