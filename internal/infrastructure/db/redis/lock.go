package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	bootstrapLockKey = "bootstrap:admin"
	bootstrapLockTTL = 30 * time.Second
)

// BootstrapLock serializes the admin bootstrap across replicas starting at
// the same time. The lock is advisory: the users collection's unique email
// index is what ultimately settles a concurrent bootstrap, so a held lock
// only avoids redundant writes.
type BootstrapLock struct {
	client *redis.Client
}

func NewBootstrapLock(client *redis.Client) *BootstrapLock {
	return &BootstrapLock{client: client}
}

// Acquire attempts to take the lock. Returns false when another replica
// holds it. The TTL bounds how long a crashed holder can block others.
func (l *BootstrapLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.client.SetNX(ctx, bootstrapLockKey, "1", bootstrapLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire bootstrap lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock early instead of waiting out the TTL.
func (l *BootstrapLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, bootstrapLockKey).Err()
}
