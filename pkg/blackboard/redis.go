package blackboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBoard is a Redis-backed Board. All keys and the event channel are
// namespaced with the mission name, so multiple missions can coexist on one
// Redis server. The board is thread-safe and can be used concurrently from
// multiple goroutines.
//
// Each entry is stored as a single JSON string (atomic per key via SET); the
// version counter lives in a companion key bumped with INCR. Every Store
// publishes the changed blackboard key to the mission's board_events channel
// to wake waiters.
type RedisBoard struct {
	rdb     *redis.Client
	mission string
}

// NewRedisBoard creates a board for the given mission.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - mission: mission identifier used for key namespacing (must not be empty)
func NewRedisBoard(redisOpts *redis.Options, mission string) (*RedisBoard, error) {
	if mission == "" {
		return nil, fmt.Errorf("mission name cannot be empty")
	}

	return &RedisBoard{
		rdb:     redis.NewClient(redisOpts),
		mission: mission,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (b *RedisBoard) Close() error {
	return b.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (b *RedisBoard) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Store atomically replaces the entry for key, bumps its version, and
// publishes a change event to wake waiters.
func (b *RedisBoard) Store(ctx context.Context, key string, value any) error {
	raw, err := encodeValue(key, value)
	if err != nil {
		return err
	}

	version, err := b.rdb.Incr(ctx, BoardVersionKey(b.mission, key)).Result()
	if err != nil {
		return fmt.Errorf("failed to bump version for key %q: %w", key, err)
	}

	entry := Entry{Key: key, Value: raw, Version: version}
	payload, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry for key %q: %w", key, err)
	}

	if err := b.rdb.Set(ctx, BoardKey(b.mission, key), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write entry to Redis: %w", err)
	}

	channel := BoardEventsChannel(b.mission)
	if err := b.rdb.Publish(ctx, channel, key).Err(); err != nil {
		return fmt.Errorf("failed to publish store event: %w", err)
	}

	return nil
}

// Query returns the current entry for key, or ErrKeyNotFound.
func (b *RedisBoard) Query(ctx context.Context, key string) (*Entry, error) {
	payload, err := b.rdb.Get(ctx, BoardKey(b.mission, key)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read entry from Redis: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry for key %q: %w", key, err)
	}

	return &entry, nil
}

// Signal publishes an event-style notification. Same mechanism as Store.
func (b *RedisBoard) Signal(ctx context.Context, key string, payload any) error {
	return b.Store(ctx, key, payload)
}

// WaitFor blocks until the entry for key satisfies pred, the timeout
// elapses, or ctx is cancelled. The subscription is established before the
// initial check so a store racing with the call is never missed.
func (b *RedisBoard) WaitFor(ctx context.Context, key string, pred Predicate, timeout time.Duration) (*Entry, error) {
	start := time.Now()

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pubsub := b.rdb.Subscribe(subCtx, BoardEventsChannel(b.mission))
	defer pubsub.Close()

	// Wait for the subscription to be established before the initial check,
	// otherwise a concurrent Store could slip between check and subscribe.
	if _, err := pubsub.Receive(subCtx); err != nil {
		return nil, fmt.Errorf("failed to subscribe to board events: %w", err)
	}
	ch := pubsub.Channel()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		entry, err := b.Query(ctx, key)
		if err != nil && !IsNotFound(err) {
			return nil, err
		}
		if entry != nil && pred(entry) {
			return entry, nil
		}

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return nil, fmt.Errorf("board event subscription closed")
				}
				if msg.Payload != key {
					continue // change to a different key
				}
			case <-timer.C:
				return nil, &CoordinationTimeoutError{Key: key, Elapsed: time.Since(start)}
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			break
		}
	}
}
