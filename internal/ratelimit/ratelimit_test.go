package ratelimit_test

import (
	"testing"
	"time"

	"github.com/cms-admin-api/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_WindowBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := ratelimit.NewWithClock(func() time.Time { return now })
	limit := ratelimit.Limit{MaxRequests: 5, Window: time.Second}

	for i, wantRemaining := range []int{4, 3, 2, 1, 0} {
		d := l.Check("login", "1.2.3.4", limit)
		require.True(t, d.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, wantRemaining, d.Remaining, "call %d", i+1)
		assert.Equal(t, 5, d.Limit)
	}

	// 6th call within the same window is denied
	d := l.Check("login", "1.2.3.4", limit)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, now.Add(time.Second), d.Reset)

	// After the window elapses the counter resets
	now = now.Add(time.Second)
	d = l.Check("login", "1.2.3.4", limit)
	assert.True(t, d.Allowed)
	assert.Equal(t, 4, d.Remaining)
}

func TestCheck_IndependentIdentifiers(t *testing.T) {
	l := ratelimit.New()
	limit := ratelimit.Limit{MaxRequests: 1, Window: time.Minute}

	assert.True(t, l.Check("login", "1.1.1.1", limit).Allowed)
	assert.False(t, l.Check("login", "1.1.1.1", limit).Allowed)
	assert.True(t, l.Check("login", "2.2.2.2", limit).Allowed)
}

func TestCheck_IndependentOperations(t *testing.T) {
	l := ratelimit.New()
	limit := ratelimit.Limit{MaxRequests: 1, Window: time.Minute}

	assert.True(t, l.Check("login", "1.1.1.1", limit).Allowed)
	assert.True(t, l.Check("upload", "1.1.1.1", limit).Allowed)
	assert.False(t, l.Check("login", "1.1.1.1", limit).Allowed)
}

func TestSweep_RemovesExpiredEntries(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := ratelimit.NewWithClock(func() time.Time { return now })
	limit := ratelimit.Limit{MaxRequests: 5, Window: time.Second}

	l.Check("login", "1.1.1.1", limit)
	l.Check("login", "2.2.2.2", limit)
	require.Equal(t, 2, l.Len())

	// Nothing expired yet
	l.Sweep()
	assert.Equal(t, 2, l.Len())

	now = now.Add(2 * time.Second)
	l.Sweep()
	assert.Equal(t, 0, l.Len())
}

func TestCheck_DenialDoesNotOverflowCounter(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := ratelimit.NewWithClock(func() time.Time { return now })
	limit := ratelimit.Limit{MaxRequests: 2, Window: time.Second}

	l.Check("api", "x", limit)
	l.Check("api", "x", limit)
	for i := 0; i < 100; i++ {
		d := l.Check("api", "x", limit)
		assert.False(t, d.Allowed)
	}

	// A new window still starts clean after sustained denial
	now = now.Add(time.Second)
	d := l.Check("api", "x", limit)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
}
