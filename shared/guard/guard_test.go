package guard_test

import (
	"context"
	"errors"
	"hostel/shared/guard"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuard_TripsAfterConsecutiveFailures(t *testing.T) {
	g := guard.New("sms", guard.Settings{
		MaxRequests:         1,
		Timeout:             time.Minute,
		ConsecutiveFailures: 2,
	})

	calls := 0
	failing := func(context.Context) error {
		calls++

		return errors.New("twilio unavailable")
	}

	assert.Error(t, g.Do(context.Background(), failing))
	assert.Error(t, g.Do(context.Background(), failing))
	assert.Equal(t, "open", g.State())

	err := g.Do(context.Background(), failing)
	assert.ErrorIs(t, err, guard.ErrOpen)
	assert.Equal(t, 2, calls)
}

func TestGuard_PassesThroughSuccess(t *testing.T) {
	g := guard.New("email", guard.Settings{ConsecutiveFailures: 3, RatePerSecond: 100, Burst: 2})

	for range 3 {
		assert.NoError(t, g.Do(context.Background(), func(context.Context) error { return nil }))
	}

	assert.Equal(t, "closed", g.State())
}

func TestGuard_CancelledWhileThrottled(t *testing.T) {
	g := guard.New("email", guard.Settings{RatePerSecond: 0.001, Burst: 1})

	assert.NoError(t, g.Do(context.Background(), func(context.Context) error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, g.Do(ctx, func(context.Context) error { return nil }))
}
