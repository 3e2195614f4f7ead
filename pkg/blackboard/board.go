package blackboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound is returned by Query when a key has never been stored.
var ErrKeyNotFound = errors.New("blackboard: key not found")

// IsNotFound returns true if the error indicates an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// CoordinationTimeoutError is returned by WaitFor when the predicate was not
// satisfied before the timeout elapsed. It carries the key being waited on
// and the elapsed wait time for diagnostics.
type CoordinationTimeoutError struct {
	Key     string
	Elapsed time.Duration
}

func (e *CoordinationTimeoutError) Error() string {
	return fmt.Sprintf("coordination timeout waiting for key %q after %s", e.Key, e.Elapsed)
}

// Entry is one versioned record on the blackboard. Value holds the
// JSON-encoded payload as stored; Version increments monotonically on every
// Store to the same key.
type Entry struct {
	Key     string          `json:"key"`
	Value   json.RawMessage `json:"value"`
	Version int64           `json:"version"`
}

// Decode unmarshals the entry's value into v.
func (e *Entry) Decode(v any) error {
	if err := json.Unmarshal(e.Value, v); err != nil {
		return fmt.Errorf("failed to decode entry %q: %w", e.Key, err)
	}
	return nil
}

// Predicate evaluates whether an entry satisfies a WaitFor condition.
// Predicates must be side-effect free; they may be called multiple times.
type Predicate func(e *Entry) bool

// Board is the coordination store interface shared by all roost components.
// All mutation goes through Store/Signal; writes are atomic per key and
// last-write-wins between racing callers (phases write disjoint keys, so
// this relaxation is acceptable).
type Board interface {
	// Store atomically replaces the entry for key with the JSON encoding of
	// value and bumps the key's version. Waiters on the key are woken.
	Store(ctx context.Context, key string, value any) error

	// Query returns the current entry for key, or ErrKeyNotFound if the key
	// has never been stored. Non-blocking, no side effects.
	Query(ctx context.Context, key string) (*Entry, error)

	// Signal publishes an event-style notification. Identical to Store by
	// mechanism; kept as a separate method so call sites read as events.
	Signal(ctx context.Context, key string, payload any) error

	// WaitFor blocks until the entry for key satisfies pred, or until timeout
	// elapses (returning *CoordinationTimeoutError), or until ctx is done.
	// If the predicate is already satisfied at call time it returns
	// immediately. The predicate is not evaluated while the key is absent.
	WaitFor(ctx context.Context, key string, pred Predicate, timeout time.Duration) (*Entry, error)
}

// encodeValue marshals a payload for storage.
func encodeValue(key string, value any) (json.RawMessage, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}
	return raw, nil
}
