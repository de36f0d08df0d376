package cache

import (
	"context"
	"fmt"
	"time"

	"weijob_backend/internal/logger"

	"github.com/go-redis/redis/v8"
)

// UnlockCache is a read-through Redis cache in front of the unlock
// ledger. It only ever caches positive answers: a hit means "definitely
// unlocked", a miss means "ask the database". Cache failures are logged
// and treated as misses so an outage can neither deny nor grant access
// on its own.
type UnlockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUnlockCache connects to Redis. An empty addr disables caching and
// returns nil, which every method tolerates.
func NewUnlockCache(addr, password string, db int, ttl time.Duration) *UnlockCache {
	if addr == "" {
		return nil
	}
	return &UnlockCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (c *UnlockCache) key(userID, day string) string {
	return fmt.Sprintf("unlock:%s:%s", userID, day)
}

// GetUnlocked reports whether a positive unlock entry is cached.
// The second return value is false on miss, disabled cache, or error.
func (c *UnlockCache) GetUnlocked(ctx context.Context, userID, day string) (bool, bool) {
	if c == nil {
		return false, false
	}
	val, err := c.client.Get(ctx, c.key(userID, day)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.CtxWarn(ctx, "unlock cache read failed", "error", err.Error())
		}
		return false, false
	}
	return val == "1", true
}

// SetUnlocked caches a positive unlock answer.
func (c *UnlockCache) SetUnlocked(ctx context.Context, userID, day string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, c.key(userID, day), "1", c.ttl).Err(); err != nil {
		logger.CtxWarn(ctx, "unlock cache write failed", "error", err.Error())
	}
}

// Invalidate drops a cached unlock entry. Called when the backing
// ledger record goes away (purge), so a stale positive answer cannot
// outlive the record it mirrors.
func (c *UnlockCache) Invalidate(ctx context.Context, userID, day string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(userID, day)).Err(); err != nil {
		logger.CtxWarn(ctx, "unlock cache invalidation failed", "error", err.Error())
	}
}

// Ping verifies connectivity at startup.
func (c *UnlockCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *UnlockCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
