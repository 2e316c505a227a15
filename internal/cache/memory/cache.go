package memory

import (
	"context"
	"sync"

	"github.com/0Rorschach1/midterm-exam/internal/cache"
	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

// Cache implements cache.Cache using in-memory storage
type Cache struct {
	data  map[string]*domain.CacheEntry
	mutex sync.RWMutex
}

// New creates a new in-memory cache
func New() *Cache {
	return &Cache{
		data: make(map[string]*domain.CacheEntry),
	}
}

// Get retrieves a cache entry by short code
func (c *Cache) Get(ctx context.Context, shortCode string) (*domain.CacheEntry, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[shortCode]
	if !exists {
		return nil, false
	}

	// Return a copy to prevent external modification
	return &domain.CacheEntry{
		OriginalURL: entry.OriginalURL,
		CreatedAt:   entry.CreatedAt,
	}, true
}

// Set stores a cache entry
func (c *Cache) Set(ctx context.Context, shortCode string, entry *domain.CacheEntry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Store a copy to prevent external modification
	c.data[shortCode] = &domain.CacheEntry{
		OriginalURL: entry.OriginalURL,
		CreatedAt:   entry.CreatedAt,
	}

	return nil
}

// Delete removes a cache entry
func (c *Cache) Delete(ctx context.Context, shortCode string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, shortCode)
	return nil
}

// Close is a no-op for the in-memory cache
func (c *Cache) Close() error {
	return nil
}

// Ensure Cache implements the interface
var _ cache.Cache = (*Cache)(nil)
