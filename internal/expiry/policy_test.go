package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0Rorschach1/midterm-exam/internal/domain"
)

func TestNewPolicy_InvalidTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{"zero", 0},
		{"negative", -time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolicy(tt.ttl)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "ttl must be positive")
		})
	}
}

func TestPolicy_IsLive_Boundary(t *testing.T) {
	policy, err := NewPolicy(60 * time.Minute)
	require.NoError(t, err)

	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"at creation", createdAt, true},
		{"just before expiry", createdAt.Add(60*time.Minute - time.Nanosecond), true},
		{"exactly at expiry", createdAt.Add(60 * time.Minute), false},
		{"after expiry", createdAt.Add(61 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsLive(createdAt, tt.now))
		})
	}
}

func TestPolicy_IsLive_DefaultTTLScenario(t *testing.T) {
	// 24 hour TTL: created at midnight, live at 23:00, expired one second
	// into the next day.
	policy, err := NewPolicy(1440 * time.Minute)
	require.NoError(t, err)

	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, policy.IsLive(createdAt, time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)))
	assert.False(t, policy.IsLive(createdAt, time.Date(2025, 1, 2, 0, 0, 1, 0, time.UTC)))
}

func TestPolicy_IsLive_NormalizesTimezones(t *testing.T) {
	policy, err := NewPolicy(60 * time.Minute)
	require.NoError(t, err)

	est := time.FixedZone("EST", -5*60*60)
	createdAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	// Same instants expressed in a different zone must compare identically
	assert.True(t, policy.IsLive(createdAt.In(est), createdAt.Add(30*time.Minute)))
	assert.False(t, policy.IsLive(createdAt.In(est), createdAt.Add(60*time.Minute).In(est)))
}

func TestPolicy_Cutoff(t *testing.T) {
	policy, err := NewPolicy(1440 * time.Minute)
	require.NoError(t, err)

	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), policy.Cutoff(now))
}

func TestPolicy_SelectExpired(t *testing.T) {
	policy, err := NewPolicy(60 * time.Minute)
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.URLEntry{
		{ShortCode: "fresh1", CreatedAt: now.Add(-30 * time.Minute)},
		{ShortCode: "stale1", CreatedAt: now.Add(-90 * time.Minute)},
		{ShortCode: "edge00", CreatedAt: now.Add(-60 * time.Minute)}, // exactly TTL old
		{ShortCode: "fresh2", CreatedAt: now},
	}

	expired := policy.SelectExpired(entries, now)
	assert.ElementsMatch(t, []string{"stale1", "edge00"}, expired)
}

func TestPolicy_SelectExpired_Idempotent(t *testing.T) {
	policy, err := NewPolicy(60 * time.Minute)
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.URLEntry{
		{ShortCode: "aaa111", CreatedAt: now.Add(-2 * time.Hour)},
		{ShortCode: "bbb222", CreatedAt: now.Add(-30 * time.Minute)},
		{ShortCode: "ccc333", CreatedAt: now.Add(-3 * time.Hour)},
	}

	first := policy.SelectExpired(entries, now)
	second := policy.SelectExpired(entries, now)
	assert.Equal(t, first, second)
}

func TestPolicy_SelectExpired_Empty(t *testing.T) {
	policy, err := NewPolicy(60 * time.Minute)
	require.NoError(t, err)

	assert.Empty(t, policy.SelectExpired(nil, time.Now()))
	assert.Empty(t, policy.SelectExpired([]*domain.URLEntry{}, time.Now()))
}

func TestPolicy_TTL(t *testing.T) {
	policy, err := NewPolicy(90 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, policy.TTL())
}
