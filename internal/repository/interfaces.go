package repository

import (
	"context"
	"time"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

// URLRepository defines the interface for URL data operations. The store
// owns persisted records exclusively; callers only compute values.
type URLRepository interface {
	// CreateURL inserts a new short URL entry. The insert is atomic against
	// the unique constraint on short_code and returns ErrDuplicateCode when
	// another live record already holds the code.
	CreateURL(ctx context.Context, shortCode, originalURL string, createdAt time.Time) (*domain.URLEntry, error)

	// GetURL retrieves a URL entry by its short code, or ErrNotFound
	GetURL(ctx context.Context, shortCode string) (*domain.URLEntry, error)

	// GetAllURLs retrieves all URL entries ordered by creation date (desc)
	GetAllURLs(ctx context.Context) ([]*domain.URLEntry, error)

	// DeleteURL removes a URL entry by its short code
	DeleteURL(ctx context.Context, shortCode string) error

	// CodeExists reports whether a live record uses the short code.
	// This is the uniqueness oracle consumed by code generation.
	CodeExists(ctx context.Context, shortCode string) (bool, error)

	// DeleteExpired bulk-deletes entries created strictly before cutoff and
	// returns the number of rows removed
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)

	// Close closes the repository connection
	Close() error
}
