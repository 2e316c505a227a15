package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
	"github.com/0Rorschach1/midterm-exam/internal/repository"
)

// Repository implements repository.URLRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository and applies pending migrations.
// The DSN enables foreign keys and WAL on every pooled connection, and
// makes concurrent writers wait for the lock instead of failing with
// SQLITE_BUSY.
func New(databasePath string) (*Repository, error) {
	dsn := databasePath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}

	if err := repo.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// CreateURL inserts a new short URL entry. A violation of the unique index
// on short_code maps to repository.ErrDuplicateCode so the caller can
// distinguish a lost generation race from other failures.
func (r *Repository) CreateURL(ctx context.Context, shortCode, originalURL string, createdAt time.Time) (*domain.URLEntry, error) {
	createdAt = createdAt.UTC()

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO urls (short_code, original_url, created_at) VALUES (?, ?, ?)",
		shortCode, originalURL, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("code %q: %w", shortCode, repository.ErrDuplicateCode)
		}
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ID: %w", err)
	}

	return &domain.URLEntry{
		ID:          int(id),
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CreatedAt:   createdAt,
	}, nil
}

// GetURL retrieves a URL entry by its short code
func (r *Repository) GetURL(ctx context.Context, shortCode string) (*domain.URLEntry, error) {
	var entry domain.URLEntry
	err := r.db.QueryRowContext(ctx,
		"SELECT id, short_code, original_url, created_at FROM urls WHERE short_code = ?",
		shortCode).Scan(&entry.ID, &entry.ShortCode, &entry.OriginalURL, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("code %q: %w", shortCode, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get URL: %w", err)
	}

	entry.CreatedAt = entry.CreatedAt.UTC()
	return &entry, nil
}

// GetAllURLs retrieves all URL entries ordered by creation date (desc)
func (r *Repository) GetAllURLs(ctx context.Context) ([]*domain.URLEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, short_code, original_url, created_at FROM urls ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get all URLs: %w", err)
	}
	defer rows.Close()

	entries := []*domain.URLEntry{}
	for rows.Next() {
		var entry domain.URLEntry
		if err := rows.Scan(&entry.ID, &entry.ShortCode, &entry.OriginalURL, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan URL row: %w", err)
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate URL rows: %w", err)
	}

	return entries, nil
}

// DeleteURL removes a URL entry by its short code
func (r *Repository) DeleteURL(ctx context.Context, shortCode string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM urls WHERE short_code = ?", shortCode); err != nil {
		return fmt.Errorf("failed to delete URL: %w", err)
	}
	return nil
}

// CodeExists reports whether a record uses the short code
func (r *Repository) CodeExists(ctx context.Context, shortCode string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM urls WHERE short_code = ?", shortCode).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check code existence: %w", err)
	}
	return count > 0, nil
}

// DeleteExpired bulk-deletes entries created strictly before cutoff
func (r *Repository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM urls WHERE created_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired URLs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted URLs: %w", err)
	}

	return deleted, nil
}

// Close closes the repository connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// isUniqueViolation reports whether err is a sqlite unique-constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// Ensure Repository implements the interface
var _ repository.URLRepository = (*Repository)(nil)
