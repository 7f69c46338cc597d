package proofgate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL applied to every cache key, matching the 24h proof-reuse window.
const CacheTTL = 24 * time.Hour

// #region cache-interface
// Cache is the proof-cache protocol: verdict keys hold "1" (proved) or "0"
// (disproved); a sibling "<key>:counterexample" holds serialized JSON for
// disproved entries. Get returns "" on miss. This is the only operation in
// the proof path expected to cross a machine boundary; callers treat any
// error as a miss and proceed to the solver.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// #endregion cache-interface

// #region redis-cache
// RedisCache is the shared remote cache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to a Redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Get returns the cached value or "" when the key is absent.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value under key with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// #endregion redis-cache

// #region memory-cache
// MemoryCache is an in-process cache used when no Redis address is
// configured, and by tests. TTLs are honored lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value or "" when absent or expired.
func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", nil
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return "", nil
	}
	return e.value, nil
}

// Set stores value under key with the given TTL.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}

// #endregion memory-cache
