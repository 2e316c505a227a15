package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

// URLRepository is a mock implementation of repository.URLRepository
type URLRepository struct {
	mock.Mock
}

// CreateURL inserts a new short URL entry
func (m *URLRepository) CreateURL(ctx context.Context, shortCode, originalURL string, createdAt time.Time) (*domain.URLEntry, error) {
	args := m.Called(ctx, shortCode, originalURL, createdAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URLEntry), args.Error(1)
}

// GetURL retrieves a URL entry by its short code
func (m *URLRepository) GetURL(ctx context.Context, shortCode string) (*domain.URLEntry, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URLEntry), args.Error(1)
}

// GetAllURLs retrieves all URL entries ordered by creation date (desc)
func (m *URLRepository) GetAllURLs(ctx context.Context) ([]*domain.URLEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.URLEntry), args.Error(1)
}

// DeleteURL removes a URL entry by its short code
func (m *URLRepository) DeleteURL(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

// CodeExists reports whether a record uses the short code
func (m *URLRepository) CodeExists(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1)
}

// DeleteExpired bulk-deletes entries created strictly before cutoff
func (m *URLRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Close closes the repository connection
func (m *URLRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
