package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/0Rorschach1/midterm-exam/internal/cache"
	"github.com/0Rorschach1/midterm-exam/internal/domain"
	"github.com/0Rorschach1/midterm-exam/internal/expiry"
	"github.com/0Rorschach1/midterm-exam/internal/repository"
	"github.com/0Rorschach1/midterm-exam/internal/shortener"
)

// urlShortener implements URLShortener interface
type urlShortener struct {
	repo      repository.URLRepository
	cache     cache.Cache
	generator shortener.Generator
	policy    *expiry.Policy
	attempts  int
	logger    *zap.Logger
	nowFunc   func() time.Time
}

// NewURLShortener creates a new URL shortener service. attempts bounds the
// insert retries taken when a generated code loses the check-then-insert
// race; it should match the generator's own attempt budget.
func NewURLShortener(repo repository.URLRepository, c cache.Cache, generator shortener.Generator, policy *expiry.Policy, attempts int, logger *zap.Logger) URLShortener {
	if attempts <= 0 {
		attempts = shortener.DefaultConfig().Attempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &urlShortener{
		repo:      repo,
		cache:     c,
		generator: generator,
		policy:    policy,
		attempts:  attempts,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// CreateShortURL creates a new short URL. The uniqueness pre-check in the
// generator is racy against concurrent creates, so the unique constraint is
// the real guard: a duplicate insert fails atomically and we regenerate.
func (s *urlShortener) CreateShortURL(ctx context.Context, originalURL string) (*domain.URLEntry, error) {
	parsedURL, err := url.ParseRequestURI(originalURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow HTTP and HTTPS schemes
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL: only HTTP and HTTPS are supported")
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		shortCode, err := s.generator.GenerateCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate short code: %w", err)
		}

		createdAt := s.nowFunc().UTC()
		entry, err := s.repo.CreateURL(ctx, shortCode, originalURL, createdAt)
		if err == nil {
			s.cacheEntry(ctx, shortCode, &domain.CacheEntry{
				OriginalURL: originalURL,
				CreatedAt:   createdAt,
			})
			return entry, nil
		}

		if !errors.Is(err, repository.ErrDuplicateCode) {
			return nil, fmt.Errorf("failed to create URL: %w", err)
		}

		s.logger.Warn("short code lost insert race, regenerating",
			zap.String("short_code", shortCode),
			zap.Int("attempt", attempt+1))
	}

	return nil, fmt.Errorf("insert retries exhausted after %d attempts: %w", s.attempts, shortener.ErrGenerationExhausted)
}

// GetOriginalURL resolves a short code to its original URL. Expired entries
// found on the way are deleted and reported as not found.
func (s *urlShortener) GetOriginalURL(ctx context.Context, shortCode string) (string, error) {
	now := s.nowFunc()

	if cached, exists := s.cache.Get(ctx, shortCode); exists {
		if s.policy.IsLive(cached.CreatedAt, now) {
			return cached.OriginalURL, nil
		}
		s.removeExpired(ctx, shortCode)
		return "", fmt.Errorf("code %q: %w", shortCode, repository.ErrNotFound)
	}

	entry, err := s.repo.GetURL(ctx, shortCode)
	if err != nil {
		return "", fmt.Errorf("failed to resolve short code: %w", err)
	}

	if !s.policy.IsLive(entry.CreatedAt, now) {
		s.removeExpired(ctx, shortCode)
		return "", fmt.Errorf("code %q: %w", shortCode, repository.ErrNotFound)
	}

	s.cacheEntry(ctx, shortCode, &domain.CacheEntry{
		OriginalURL: entry.OriginalURL,
		CreatedAt:   entry.CreatedAt,
	})

	return entry.OriginalURL, nil
}

// GetURLInfo retrieves detailed information about a short URL
func (s *urlShortener) GetURLInfo(ctx context.Context, shortCode string) (*domain.URLEntry, error) {
	entry, err := s.repo.GetURL(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL info: %w", err)
	}

	if !s.policy.IsLive(entry.CreatedAt, s.nowFunc()) {
		s.removeExpired(ctx, shortCode)
		return nil, fmt.Errorf("code %q: %w", shortCode, repository.ErrNotFound)
	}

	return entry, nil
}

// GetAllURLs retrieves all live short URLs. Expired entries found in the
// snapshot are deleted and excluded from the result.
func (s *urlShortener) GetAllURLs(ctx context.Context) ([]*domain.URLEntry, error) {
	entries, err := s.repo.GetAllURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get URLs from database: %w", err)
	}

	now := s.nowFunc()
	expired := make(map[string]bool)
	for _, code := range s.policy.SelectExpired(entries, now) {
		expired[code] = true
		s.removeExpired(ctx, code)
	}

	live := make([]*domain.URLEntry, 0, len(entries))
	for _, entry := range entries {
		if !expired[entry.ShortCode] {
			live = append(live, entry)
		}
	}

	return live, nil
}

// DeleteShortURL removes a short URL
func (s *urlShortener) DeleteShortURL(ctx context.Context, shortCode string) error {
	exists, err := s.repo.CodeExists(ctx, shortCode)
	if err != nil {
		return fmt.Errorf("failed to check URL existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("code %q: %w", shortCode, repository.ErrNotFound)
	}

	if err := s.repo.DeleteURL(ctx, shortCode); err != nil {
		return fmt.Errorf("failed to delete URL from database: %w", err)
	}

	if err := s.cache.Delete(ctx, shortCode); err != nil {
		s.logger.Warn("failed to delete cache entry",
			zap.String("short_code", shortCode),
			zap.Error(err))
	}

	return nil
}

// CleanupExpired bulk-deletes all entries older than the TTL cutoff. The
// cutoff is computed once per pass, so entries created after the snapshot
// are never at risk. Running it again with no new expiries deletes nothing.
func (s *urlShortener) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := s.policy.Cutoff(s.nowFunc())

	deleted, err := s.repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired URLs: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("purged expired URLs",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}

	// Swept codes may linger in the cache; the liveness check on lookup
	// keeps them from resolving, and cache misses repopulate correctly.
	return deleted, nil
}

// Close closes the service and its dependencies
func (s *urlShortener) Close() error {
	if err := s.cache.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("failed to close repository: %w", err)
	}
	return nil
}

// cacheEntry best-effort populates the lookup cache
func (s *urlShortener) cacheEntry(ctx context.Context, shortCode string, entry *domain.CacheEntry) {
	if err := s.cache.Set(ctx, shortCode, entry); err != nil {
		s.logger.Warn("failed to cache entry",
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
}

// removeExpired lazily deletes an expired record from store and cache
func (s *urlShortener) removeExpired(ctx context.Context, shortCode string) {
	if err := s.repo.DeleteURL(ctx, shortCode); err != nil {
		s.logger.Warn("failed to delete expired URL",
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
	if err := s.cache.Delete(ctx, shortCode); err != nil {
		s.logger.Warn("failed to delete expired cache entry",
			zap.String("short_code", shortCode),
			zap.Error(err))
	}
}

// Ensure urlShortener implements URLShortener interface
var _ URLShortener = (*urlShortener)(nil)
