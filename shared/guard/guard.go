// Package guard throttles calls to an external channel and stops calling it while it keeps
// failing.
package guard

import (
	"context"
	"errors"
	"fmt"
	"hostel/config"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrOpen is returned without calling the channel while the breaker is open.
var ErrOpen = errors.New("circuit breaker is open")

type Guard struct {
	name    string
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

type Settings struct {
	MaxRequests         uint32
	Timeout             time.Duration
	ConsecutiveFailures uint32
	RatePerSecond       float64
	Burst               int
}

// SettingsFromConfig reads the breaker and throttle settings shared by every channel.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		MaxRequests:         cfg.External.Breaker.MaxRequests,
		Timeout:             time.Duration(cfg.External.Breaker.TimeoutSeconds) * time.Second,
		ConsecutiveFailures: cfg.External.Breaker.ConsecutiveFailures,
		RatePerSecond:       cfg.Notification.RatePerSecond,
		Burst:               cfg.Notification.Burst,
	}
}

func New(name string, settings Settings) *Guard {
	limit := rate.Inf
	if settings.RatePerSecond > 0 {
		limit = rate.Limit(settings.RatePerSecond)
	}

	burst := settings.Burst
	if burst <= 0 {
		burst = 1
	}

	trip := settings.ConsecutiveFailures
	if trip == 0 {
		trip = 1
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker changed state")
		},
	})

	return &Guard{
		name:    name,
		breaker: breaker,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Do waits for a rate slot and runs fn through the breaker.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limit wait: %w", g.name, err)
	}

	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s: %w", g.name, ErrOpen)
	}

	return err //nolint:wrapcheck
}

func (g *Guard) State() string {
	return g.breaker.State().String()
}
