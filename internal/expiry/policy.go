// Package expiry decides whether URL records are still valid under the
// configured TTL. The policy is pure: the evaluation instant is always
// supplied by the caller, never read from a clock, and all comparisons
// happen in UTC.
package expiry

import (
	"fmt"
	"time"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

// Policy evaluates record liveness against a fixed positive TTL.
// A record is live while now < createdAt + TTL; at exactly createdAt + TTL
// it is expired. There is no "never expires" mode.
type Policy struct {
	ttl time.Duration
}

// NewPolicy creates a policy for the given TTL. A non-positive TTL is a
// configuration error and fails fast.
func NewPolicy(ttl time.Duration) (*Policy, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive, got: %v", ttl)
	}
	return &Policy{ttl: ttl}, nil
}

// TTL returns the configured time-to-live
func (p *Policy) TTL() time.Duration {
	return p.ttl
}

// IsLive reports whether a record created at createdAt is still valid at now.
// Timestamps are normalized to UTC before comparison.
func (p *Policy) IsLive(createdAt, now time.Time) bool {
	return now.UTC().Before(createdAt.UTC().Add(p.ttl))
}

// Cutoff returns the creation-time threshold for now: records created
// strictly before it are expired. Used by the bulk sweep.
func (p *Policy) Cutoff(now time.Time) time.Time {
	return now.UTC().Add(-p.ttl)
}

// SelectExpired returns the short codes of entries that are no longer live
// at now. It is a pure filter with no side effects and is idempotent over
// the same snapshot.
func (p *Policy) SelectExpired(entries []*domain.URLEntry, now time.Time) []string {
	var expired []string
	for _, entry := range entries {
		if !p.IsLive(entry.CreatedAt, now) {
			expired = append(expired, entry.ShortCode)
		}
	}
	return expired
}
