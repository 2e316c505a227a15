package repository

import "errors"

var (
	// ErrDuplicateCode indicates an insert hit the unique constraint on
	// short_code. The create operation recovers by regenerating within its
	// attempt budget; it is only surfaced upward once that budget is spent.
	ErrDuplicateCode = errors.New("short code already exists")

	// ErrNotFound indicates no entry exists for the given short code
	ErrNotFound = errors.New("short code not found")
)
