package blackboard

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryBoard is the in-process Board implementation. It is run-scoped: the
// store lives and dies with the mission that created it. Thread-safe.
type MemoryBoard struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	changed chan struct{} // closed and replaced on every Store (broadcast)
}

// NewMemoryBoard creates an empty in-memory board.
func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{
		entries: make(map[string]*Entry),
		changed: make(chan struct{}),
	}
}

// Store atomically replaces the entry for key and wakes all waiters.
func (b *MemoryBoard) Store(ctx context.Context, key string, value any) error {
	raw, err := encodeValue(key, value)
	if err != nil {
		return err
	}

	b.mu.Lock()
	version := int64(1)
	if prev, ok := b.entries[key]; ok {
		version = prev.Version + 1
	}
	b.entries[key] = &Entry{Key: key, Value: raw, Version: version}

	// Broadcast to waiters: close the current generation channel and start
	// a new one. Waiters re-check their predicate and re-arm on the new
	// channel if still unsatisfied.
	close(b.changed)
	b.changed = make(chan struct{})
	b.mu.Unlock()

	return nil
}

// Query returns a copy of the current entry for key.
func (b *MemoryBoard) Query(ctx context.Context, key string) (*Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}

	cp := *entry
	return &cp, nil
}

// Signal publishes an event-style notification. Same mechanism as Store.
func (b *MemoryBoard) Signal(ctx context.Context, key string, payload any) error {
	return b.Store(ctx, key, payload)
}

// WaitFor blocks until the entry for key satisfies pred, the timeout
// elapses, or ctx is cancelled.
func (b *MemoryBoard) WaitFor(ctx context.Context, key string, pred Predicate, timeout time.Duration) (*Entry, error) {
	start := time.Now()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		b.mu.RLock()
		entry, ok := b.entries[key]
		ch := b.changed
		var cp Entry
		if ok {
			cp = *entry
		}
		b.mu.RUnlock()

		if ok && pred(&cp) {
			return &cp, nil
		}

		select {
		case <-ch:
			// A write happened somewhere; re-check the predicate.
		case <-timer.C:
			return nil, &CoordinationTimeoutError{Key: key, Elapsed: time.Since(start)}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
