package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/itissulav/Kharcha/internal/application/adapter"
)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript moves the expiry only while the key still holds the caller's token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// redisRunLock implements adapter.RunLock with SET NX PX.
type redisRunLock struct {
	client *redis.Client
}

// NewRedisRunLock creates a run lock shared by every process using client.
func NewRedisRunLock(client *redis.Client) adapter.RunLock {
	return &redisRunLock{client: client}
}

// TryAcquire sets key to a fresh token unless it already exists.
func (l *redisRunLock) TryAcquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Extend renews key for ttl if it is still owned by token.
func (l *redisRunLock) Extend(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	renewed, err := extendScript.Run(ctx, l.client, []string{key}, token, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to extend lock %s: %w", key, err)
	}
	return renewed == 1, nil
}

// Release deletes key if it is still owned by token.
func (l *redisRunLock) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	return nil
}

type heldLock struct {
	token     string
	expiresAt time.Time
}

// InMemoryRunLock is a process-local RunLock for single-instance deployments.
type InMemoryRunLock struct {
	mu    sync.Mutex
	locks map[string]heldLock
	now   func() time.Time
}

// NewInMemoryRunLock creates a new in-memory run lock.
func NewInMemoryRunLock() *InMemoryRunLock {
	return &InMemoryRunLock{
		locks: make(map[string]heldLock),
		now:   time.Now,
	}
}

// TryAcquire takes key unless an unexpired holder exists.
func (l *InMemoryRunLock) TryAcquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.locks[key]; ok && now.Before(held.expiresAt) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.locks[key] = heldLock{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

// Extend renews key for ttl while token holds it unexpired.
func (l *InMemoryRunLock) Extend(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	held, ok := l.locks[key]
	if !ok || held.token != token || !now.Before(held.expiresAt) {
		return false, nil
	}
	held.expiresAt = now.Add(ttl)
	l.locks[key] = held
	return true, nil
}

// Release frees key if token still owns it.
func (l *InMemoryRunLock) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[key]; ok && held.token == token {
		delete(l.locks, key)
	}
	return nil
}

// IsHeld reports whether key currently has an unexpired holder.
func (l *InMemoryRunLock) IsHeld(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	held, ok := l.locks[key]
	return ok && l.now().Before(held.expiresAt)
}
