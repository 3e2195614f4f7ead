//go:build integration

package blackboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container for testing.
func setupRedis(t *testing.T) string {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start Redis container")
	t.Cleanup(func() {
		if err := redisC.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Redis container: %v", err)
		}
	})

	host, err := redisC.Host(ctx)
	require.NoError(t, err)

	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return fmt.Sprintf("redis://%s:%s", host, port.Port())
}

// TestRedisBoard_RealRedisRoundTrip exercises a full store/wait/query cycle
// against a real Redis server, including cross-connection pub/sub wake-ups.
func TestRedisBoard_RealRedisRoundTrip(t *testing.T) {
	redisURL := setupRedis(t)

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)

	writer, err := NewRedisBoard(opts, "integration-mission")
	require.NoError(t, err)
	defer writer.Close()

	reader, err := NewRedisBoard(opts, "integration-mission")
	require.NoError(t, err)
	defer reader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, writer.Ping(ctx))

	// Waiter on one connection, writer on another.
	done := make(chan error, 1)
	go func() {
		_, err := reader.WaitFor(ctx, KeySamples, func(e *Entry) bool {
			var samples []map[string]any
			return e.Decode(&samples) == nil && len(samples) >= 2
		}, 5*time.Second)
		done <- err
	}()

	time.Sleep(100 * time.Millisecond)
	samples := []map[string]any{
		{"id": "s1", "filename": "wren_01.wav"},
		{"id": "s2", "filename": "wren_02.wav"},
	}
	require.NoError(t, writer.Store(ctx, KeySamples, samples))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("waiter did not wake in time")
	}

	entry, err := reader.Query(ctx, KeySamples)
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.Version)
}
