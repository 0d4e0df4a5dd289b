package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// EntitlementCache caches resolved entitlements per owner. Misses are
// reported via the bool return, not an error.
type EntitlementCache interface {
	Get(ctx context.Context, owner Owner) (Entitlement, bool, error)
	Set(ctx context.Context, owner Owner, ent Entitlement) error
	Invalidate(ctx context.Context, owner Owner) error
}

const defaultCacheTTL = 5 * time.Minute

type memoryCacheEntry struct {
	ent       Entitlement
	expiresAt time.Time
}

// MemoryEntitlementCache is an in-process cache suitable for single-instance
// deployments and tests.
type MemoryEntitlementCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	ttl     time.Duration
}

// NewMemoryEntitlementCache creates a memory cache. A non-positive ttl falls
// back to the default.
func NewMemoryEntitlementCache(ttl time.Duration) *MemoryEntitlementCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &MemoryEntitlementCache{
		entries: make(map[string]memoryCacheEntry),
		ttl:     ttl,
	}
}

func (c *MemoryEntitlementCache) Get(_ context.Context, owner Owner) (Entitlement, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[owner.String()]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return Entitlement{}, false, nil
	}
	return entry.ent, true, nil
}

func (c *MemoryEntitlementCache) Set(_ context.Context, owner Owner, ent Entitlement) error {
	c.mu.Lock()
	c.entries[owner.String()] = memoryCacheEntry{ent: ent, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryEntitlementCache) Invalidate(_ context.Context, owner Owner) error {
	c.mu.Lock()
	delete(c.entries, owner.String())
	c.mu.Unlock()
	return nil
}

// RedisEntitlementCache caches entitlements in Redis so all instances see
// invalidations immediately after webhook processing.
type RedisEntitlementCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisEntitlementCache creates a Redis-backed cache. A non-positive ttl
// falls back to the default.
func NewRedisEntitlementCache(client redis.UniversalClient, ttl time.Duration) *RedisEntitlementCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisEntitlementCache{client: client, ttl: ttl}
}

func (c *RedisEntitlementCache) key(owner Owner) string {
	return fmt.Sprintf("billing:entitlement:%s", owner)
}

func (c *RedisEntitlementCache) Get(ctx context.Context, owner Owner) (Entitlement, bool, error) {
	raw, err := c.client.Get(ctx, c.key(owner)).Bytes()
	if err == redis.Nil {
		return Entitlement{}, false, nil
	}
	if err != nil {
		return Entitlement{}, false, fmt.Errorf("entitlement cache get: %w", err)
	}
	var ent Entitlement
	if err := json.Unmarshal(raw, &ent); err != nil {
		return Entitlement{}, false, nil
	}
	return ent, true, nil
}

func (c *RedisEntitlementCache) Set(ctx context.Context, owner Owner, ent Entitlement) error {
	raw, err := json.Marshal(ent)
	if err != nil {
		return fmt.Errorf("entitlement cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, c.key(owner), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("entitlement cache set: %w", err)
	}
	return nil
}

func (c *RedisEntitlementCache) Invalidate(ctx context.Context, owner Owner) error {
	if err := c.client.Del(ctx, c.key(owner)).Err(); err != nil {
		return fmt.Errorf("entitlement cache invalidate: %w", err)
	}
	return nil
}
