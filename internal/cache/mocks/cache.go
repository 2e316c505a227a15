package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

// Cache is a mock implementation of cache.Cache
type Cache struct {
	mock.Mock
}

// Get retrieves a cache entry by short code
func (m *Cache) Get(ctx context.Context, shortCode string) (*domain.CacheEntry, bool) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.CacheEntry), args.Bool(1)
}

// Set stores a cache entry
func (m *Cache) Set(ctx context.Context, shortCode string, entry *domain.CacheEntry) error {
	args := m.Called(ctx, shortCode, entry)
	return args.Error(0)
}

// Delete removes a cache entry
func (m *Cache) Delete(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

// Close closes the cache
func (m *Cache) Close() error {
	args := m.Called()
	return args.Error(0)
}
