package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dyluth/roost/pkg/blackboard"
)

// DefaultInterval is the polling interval used when callers pass zero.
const DefaultInterval = 200 * time.Millisecond

// Event describes one observed board mutation.
type Event struct {
	Key     string          `json:"key"`
	Version int64           `json:"version"`
	Value   json.RawMessage `json:"value"`
}

// Stream polls the well-known mission keys and invokes emit for every new or
// re-stored entry, in key order within each poll. An entry is reported when
// its version advances past the last version seen for that key, so re-running
// a phase surfaces as a fresh event.
//
// Stream runs until the context is cancelled and returns the context's error.
// Polling is used instead of board-level waiting because a watcher follows
// many keys at once across the whole mission lifetime.
func Stream(ctx context.Context, b blackboard.Board, interval time.Duration, emit func(Event)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	seen := make(map[string]int64)

	for {
		if err := pollOnce(ctx, b, seen, emit); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// PollForEntry polls until the key exists on the board or the timeout
// elapses. Polls every DefaultInterval. Used by tooling that wants the
// poll-based semantics rather than the board's subscription-based WaitFor.
func PollForEntry(ctx context.Context, b blackboard.Board, key string, timeout time.Duration) (*blackboard.Entry, error) {
	ticker := time.NewTicker(DefaultInterval)
	defer ticker.Stop()

	timeoutCh := time.After(timeout)

	for {
		entry, err := b.Query(ctx, key)
		if err == nil {
			return entry, nil
		}
		if !blackboard.IsNotFound(err) {
			return nil, fmt.Errorf("failed to query for entry: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeoutCh:
			return nil, &blackboard.CoordinationTimeoutError{Key: key, Elapsed: timeout}
		case <-ticker.C:
		}
	}
}

func pollOnce(ctx context.Context, b blackboard.Board, seen map[string]int64, emit func(Event)) error {
	for _, key := range blackboard.MissionKeys() {
		entry, err := b.Query(ctx, key)
		if err != nil {
			if blackboard.IsNotFound(err) {
				continue
			}
			return fmt.Errorf("failed to poll board key '%s': %w", key, err)
		}

		if entry.Version <= seen[key] {
			continue
		}
		seen[key] = entry.Version
		emit(Event{Key: entry.Key, Version: entry.Version, Value: entry.Value})
	}
	return nil
}
