package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}

func TestRedisRunLock(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire fails while held", func(t *testing.T) {
		_, client := newTestRedis(t)
		lock := NewRedisRunLock(client)

		token, ok, err := lock.TryAcquire(ctx, "job", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotEmpty(t, token)

		_, ok, err = lock.TryAcquire(ctx, "job", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("release frees the lock", func(t *testing.T) {
		_, client := newTestRedis(t)
		lock := NewRedisRunLock(client)

		token, _, err := lock.TryAcquire(ctx, "job", time.Minute)
		require.NoError(t, err)
		require.NoError(t, lock.Release(ctx, "job", token))

		_, ok, err := lock.TryAcquire(ctx, "job", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release with a stale token keeps the new holder", func(t *testing.T) {
		server, client := newTestRedis(t)
		lock := NewRedisRunLock(client)

		stale, _, err := lock.TryAcquire(ctx, "job", time.Second)
		require.NoError(t, err)
		server.FastForward(2 * time.Second)

		_, ok, err := lock.TryAcquire(ctx, "job", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, lock.Release(ctx, "job", stale))
		assert.True(t, server.Exists("job"))
	})

	t.Run("extend renews only for the holder", func(t *testing.T) {
		server, client := newTestRedis(t)
		lock := NewRedisRunLock(client)

		token, _, err := lock.TryAcquire(ctx, "job", 10*time.Second)
		require.NoError(t, err)

		server.FastForward(8 * time.Second)
		renewed, err := lock.Extend(ctx, "job", token, time.Minute)
		require.NoError(t, err)
		assert.True(t, renewed)
		assert.Equal(t, time.Minute, server.TTL("job"))

		renewed, err = lock.Extend(ctx, "job", "someone-else", time.Hour)
		require.NoError(t, err)
		assert.False(t, renewed)
		assert.Equal(t, time.Minute, server.TTL("job"))

		server.FastForward(2 * time.Minute)
		renewed, err = lock.Extend(ctx, "job", token, time.Minute)
		require.NoError(t, err)
		assert.False(t, renewed, "an expired lock cannot be renewed")
	})

	t.Run("unreachable server returns an error", func(t *testing.T) {
		server, client := newTestRedis(t)
		server.Close()

		_, ok, err := NewRedisRunLock(client).TryAcquire(ctx, "job", time.Minute)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestInMemoryRunLock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	lock := NewInMemoryRunLock()
	lock.now = func() time.Time { return now }

	token, ok, err := lock.TryAcquire(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, lock.IsHeld("job"))

	_, ok, _ = lock.TryAcquire(ctx, "job", time.Minute)
	assert.False(t, ok, "held lock must not be acquired twice")

	require.NoError(t, lock.Release(ctx, "job", "someone-else"))
	assert.True(t, lock.IsHeld("job"), "foreign token must not release")

	now = now.Add(2 * time.Minute)
	assert.False(t, lock.IsHeld("job"), "lock expires after its ttl")

	_, ok, _ = lock.TryAcquire(ctx, "job", time.Minute)
	assert.True(t, ok)

	require.NoError(t, lock.Release(ctx, "job", token))
}

func TestInMemoryRunLock_Extend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	lock := NewInMemoryRunLock()
	lock.now = func() time.Time { return now }

	token, _, err := lock.TryAcquire(ctx, "job", time.Minute)
	require.NoError(t, err)

	now = now.Add(50 * time.Second)
	renewed, err := lock.Extend(ctx, "job", token, time.Minute)
	require.NoError(t, err)
	assert.True(t, renewed)

	now = now.Add(50 * time.Second)
	assert.True(t, lock.IsHeld("job"), "renewed lock outlives its first ttl")

	renewed, _ = lock.Extend(ctx, "job", "someone-else", time.Minute)
	assert.False(t, renewed)

	now = now.Add(time.Minute)
	renewed, _ = lock.Extend(ctx, "job", token, time.Minute)
	assert.False(t, renewed, "an expired lock cannot be renewed")
	assert.False(t, lock.IsHeld("job"))
}
