package cache

import (
	"context"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

// Cache defines the interface for the short-code lookup cache. It is a
// read-through convenience only: the repository remains the source of
// truth, and cached entries still go through the expiration policy.
type Cache interface {
	// Get retrieves a cache entry by short code
	Get(ctx context.Context, shortCode string) (*domain.CacheEntry, bool)

	// Set stores a cache entry
	Set(ctx context.Context, shortCode string, entry *domain.CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, shortCode string) error

	// Close closes the cache connection (if applicable)
	Close() error
}
