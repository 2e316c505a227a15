package domain

import (
	"time"
)

// URLEntry represents a shortened URL with its metadata. Entries are
// immutable after creation; they only ever leave the store through an
// explicit delete or the expiration sweep.
type URLEntry struct {
	ID          int       `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// CacheEntry represents a resolved short code in the lookup cache.
// CreatedAt is carried so a cache hit can still be expiry-checked.
type CacheEntry struct {
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateURLRequest represents the request to create a short URL
type CreateURLRequest struct {
	URL string `json:"url"`
}

// CreateURLResponse represents the response when creating a short URL
type CreateURLResponse struct {
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
}
