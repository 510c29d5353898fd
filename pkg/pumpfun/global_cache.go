// ==============================================
// File: pkg/pumpfun/global_cache.go
// ==============================================
package pumpfun

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// GlobalCache keeps the last fetched global account for a fixed TTL.
// A zero TTL disables caching.
type GlobalCache struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	account   *GlobalAccount
	fetchedAt time.Time
}

// NewGlobalCache creates a cache that refetches after ttl.
func NewGlobalCache(ttl time.Duration) *GlobalCache {
	return &GlobalCache{
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached global account, fetching it through reader when the
// cache is empty or stale. Fetch errors are not cached.
func (c *GlobalCache) Get(ctx context.Context, reader AccountReader, logger *zap.Logger) (*GlobalAccount, error) {
	if c.ttl <= 0 {
		return FetchGlobalAccount(ctx, reader, logger)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.account != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.account, nil
	}

	account, err := FetchGlobalAccount(ctx, reader, logger)
	if err != nil {
		return nil, err
	}

	c.account = account
	c.fetchedAt = c.now()
	return account, nil
}

// Invalidate drops the cached account so the next Get refetches.
func (c *GlobalCache) Invalidate() {
	c.mu.Lock()
	c.account = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
