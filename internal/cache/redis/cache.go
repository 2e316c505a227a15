package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/0Rorschach1/midterm-exam/internal/cache"
	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

const keyPrefix = "url:"

// Cache implements cache.Cache backed by Redis. Entries are stored as JSON
// under a key prefix with a Redis-side TTL matching the record TTL, so
// stale entries age out even if the service never touches them again.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis cache and verifies connectivity
func New(ctx context.Context, addr string, ttl time.Duration) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &Cache{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get retrieves a cache entry by short code
func (c *Cache) Get(ctx context.Context, shortCode string) (*domain.CacheEntry, bool) {
	data, err := c.client.Get(ctx, keyPrefix+shortCode).Bytes()
	if err != nil {
		// Misses and transport errors both fall through to the repository
		return nil, false
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	return &entry, true
}

// Set stores a cache entry
func (c *Cache) Set(ctx context.Context, shortCode string, entry *domain.CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+shortCode, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	return nil
}

// Delete removes a cache entry
func (c *Cache) Delete(ctx context.Context, shortCode string) error {
	if err := c.client.Del(ctx, keyPrefix+shortCode).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ensure Cache implements the interface
var _ cache.Cache = (*Cache)(nil)
