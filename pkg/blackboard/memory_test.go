package blackboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBoardStoreQuery(t *testing.T) {
	board := NewMemoryBoard()
	ctx := context.Background()

	t.Run("round trip returns exact value", func(t *testing.T) {
		type payload struct {
			Count int    `json:"count"`
			Name  string `json:"name"`
		}

		err := board.Store(ctx, "nest", payload{Count: 3, Name: "wren"})
		require.NoError(t, err)

		entry, err := board.Query(ctx, "nest")
		require.NoError(t, err)
		assert.Equal(t, "nest", entry.Key)
		assert.Equal(t, int64(1), entry.Version)

		var got payload
		require.NoError(t, entry.Decode(&got))
		assert.Equal(t, payload{Count: 3, Name: "wren"}, got)
	})

	t.Run("version bumps on every store", func(t *testing.T) {
		require.NoError(t, board.Store(ctx, "counter", 1))
		require.NoError(t, board.Store(ctx, "counter", 2))
		require.NoError(t, board.Store(ctx, "counter", 3))

		entry, err := board.Query(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, int64(3), entry.Version)

		var v int
		require.NoError(t, entry.Decode(&v))
		assert.Equal(t, 3, v)
	})

	t.Run("absent key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := board.Query(ctx, "never-stored")
		assert.True(t, IsNotFound(err))
	})

	t.Run("unencodable value is rejected", func(t *testing.T) {
		err := board.Store(ctx, "bad", make(chan int))
		assert.Error(t, err)
	})
}

func TestMemoryBoardSignal(t *testing.T) {
	board := NewMemoryBoard()
	ctx := context.Background()

	// Signal and Store are one mechanism; a signalled payload is queryable.
	require.NoError(t, board.Signal(ctx, KeyMissionStatus, map[string]string{"phase": "discovery"}))

	entry, err := board.Query(ctx, KeyMissionStatus)
	require.NoError(t, err)

	var status map[string]string
	require.NoError(t, entry.Decode(&status))
	assert.Equal(t, "discovery", status["phase"])
}

func TestMemoryBoardWaitFor(t *testing.T) {
	ctx := context.Background()

	countAtLeast := func(n int) Predicate {
		return func(e *Entry) bool {
			var v struct {
				Count int `json:"count"`
			}
			return e.Decode(&v) == nil && v.Count >= n
		}
	}

	t.Run("resolves immediately when already satisfied", func(t *testing.T) {
		board := NewMemoryBoard()
		require.NoError(t, board.Store(ctx, "x", map[string]int{"count": 5}))

		entry, err := board.WaitFor(ctx, "x", countAtLeast(3), 50*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, int64(1), entry.Version)
	})

	t.Run("wakes when a later store satisfies the predicate", func(t *testing.T) {
		board := NewMemoryBoard()

		go func() {
			time.Sleep(20 * time.Millisecond)
			_ = board.Store(ctx, "x", map[string]int{"count": 1})
			time.Sleep(20 * time.Millisecond)
			_ = board.Store(ctx, "x", map[string]int{"count": 3})
		}()

		entry, err := board.WaitFor(ctx, "x", countAtLeast(3), 2*time.Second)
		require.NoError(t, err)
		assert.Equal(t, int64(2), entry.Version)
	})

	t.Run("times out with CoordinationTimeoutError", func(t *testing.T) {
		board := NewMemoryBoard()

		start := time.Now()
		_, err := board.WaitFor(ctx, "x", countAtLeast(3), 50*time.Millisecond)
		require.Error(t, err)

		var timeoutErr *CoordinationTimeoutError
		require.True(t, errors.As(err, &timeoutErr))
		assert.Equal(t, "x", timeoutErr.Key)
		assert.GreaterOrEqual(t, timeoutErr.Elapsed, 50*time.Millisecond)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("does not evaluate predicate while key is absent", func(t *testing.T) {
		board := NewMemoryBoard()
		require.NoError(t, board.Store(ctx, "other", 1))

		called := false
		_, err := board.WaitFor(ctx, "x", func(e *Entry) bool {
			called = true
			return true
		}, 50*time.Millisecond)

		var timeoutErr *CoordinationTimeoutError
		require.True(t, errors.As(err, &timeoutErr))
		assert.False(t, called)
	})

	t.Run("all concurrent waiters are woken", func(t *testing.T) {
		board := NewMemoryBoard()

		const waiters = 5
		var wg sync.WaitGroup
		results := make(chan error, waiters)

		for i := 0; i < waiters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := board.WaitFor(ctx, "x", countAtLeast(1), 2*time.Second)
				results <- err
			}()
		}

		time.Sleep(20 * time.Millisecond)
		require.NoError(t, board.Store(ctx, "x", map[string]int{"count": 1}))

		wg.Wait()
		close(results)
		for err := range results {
			assert.NoError(t, err)
		}
	})

	t.Run("context cancellation unblocks the waiter", func(t *testing.T) {
		board := NewMemoryBoard()
		waitCtx, cancel := context.WithCancel(ctx)

		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := board.WaitFor(waitCtx, "x", countAtLeast(1), 5*time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryBoardConcurrentStores(t *testing.T) {
	board := NewMemoryBoard()
	ctx := context.Background()

	// Racing writers on the same key: last-write-wins, version counts all.
	var wg sync.WaitGroup
	const writes = 50
	for i := 0; i < writes; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = board.Store(ctx, "contended", n)
		}(i)
	}
	wg.Wait()

	entry, err := board.Query(ctx, "contended")
	require.NoError(t, err)
	assert.Equal(t, int64(writes), entry.Version)
}
