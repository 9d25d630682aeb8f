// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// RunLock serializes long-running jobs across processes.
type RunLock interface {
	// TryAcquire takes the lock for ttl. It returns ok=false when another owner holds it.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// Extend pushes the expiry of a lock token still owns to now+ttl.
	// It returns false when the lock expired or changed hands.
	Extend(ctx context.Context, key, token string, ttl time.Duration) (bool, error)

	// Release frees the lock if token still owns it.
	Release(ctx context.Context, key, token string) error
}
