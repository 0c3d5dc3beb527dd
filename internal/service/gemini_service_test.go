package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(clock *fakeClock) *circuitBreaker {
	b := newCircuitBreaker(3, time.Minute)
	b.now = clock.now
	return b
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := newTestBreaker(clock)

	for i := 0; i < 2; i++ {
		require.NoError(t, b.allow())
		b.failure()
	}
	require.NoError(t, b.allow())
	b.failure()

	err := b.allow()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func TestCircuitBreaker_RecoversAfterCooldown(t *testing.T) {
	tests := []struct {
		name        string
		trialFails  bool
		wantBlocked bool
	}{
		{name: "trial success closes breaker", trialFails: false, wantBlocked: false},
		{name: "trial failure reopens breaker", trialFails: true, wantBlocked: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
			b := newTestBreaker(clock)
			for i := 0; i < 3; i++ {
				b.failure()
			}
			require.Error(t, b.allow())

			clock.advance(30 * time.Second)
			require.Error(t, b.allow(), "still cooling down")

			clock.advance(31 * time.Second)
			require.NoError(t, b.allow(), "trial call after cooldown")
			assert.Error(t, b.allow(), "only one trial call while half-open")

			if tt.trialFails {
				b.failure()
			} else {
				b.success()
			}

			if tt.wantBlocked {
				assert.Error(t, b.allow())
				clock.advance(time.Minute)
				assert.NoError(t, b.allow())
			} else {
				assert.NoError(t, b.allow())
				assert.NoError(t, b.allow())
			}
		})
	}
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	b := newTestBreaker(clock)

	b.failure()
	b.failure()
	b.success()
	b.failure()
	b.failure()

	assert.NoError(t, b.allow())
}
