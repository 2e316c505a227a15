package service

import (
	"context"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

// URLShortener defines the interface for URL shortening operations.
// Lookup operations only ever return live entries; expired ones are
// removed lazily as they are encountered.
type URLShortener interface {
	// CreateShortURL creates a new short URL with a unique generated code
	CreateShortURL(ctx context.Context, originalURL string) (*domain.URLEntry, error)

	// GetOriginalURL resolves a short code to its original URL
	GetOriginalURL(ctx context.Context, shortCode string) (string, error)

	// GetURLInfo retrieves detailed information about a short URL
	GetURLInfo(ctx context.Context, shortCode string) (*domain.URLEntry, error)

	// GetAllURLs retrieves all live short URLs
	GetAllURLs(ctx context.Context) ([]*domain.URLEntry, error)

	// DeleteShortURL removes a short URL
	DeleteShortURL(ctx context.Context, shortCode string) error

	// CleanupExpired bulk-deletes all expired entries and returns the count
	CleanupExpired(ctx context.Context) (int64, error)

	// Close closes the service and its dependencies
	Close() error
}
