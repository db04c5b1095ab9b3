// Package latest keeps the newest booking in memory so the admin dashboard can poll it
// without touching the database.
package latest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"hostel/config"
	"hostel/infras/otel"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/repository"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/sequence"

	"github.com/rs/zerolog/log"
)

const defaultInterval = 10 * time.Second

type Tracker struct {
	repo     repository.Booking
	otel     otel.Otel
	interval time.Duration
	current  atomic.Pointer[model.BookingDetail]
}

func New(repo repository.Booking, cfg *config.Config, otel otel.Otel) *Tracker {
	interval := time.Duration(cfg.Reservation.LatestPollSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Tracker{
		repo:     repo,
		otel:     otel,
		interval: interval,
	}
}

// Get returns the newest booking seen so far, or false before the first successful poll.
func (t *Tracker) Get() (model.BookingDetail, bool) {
	current := t.current.Load()
	if current == nil {
		return model.BookingDetail{}, false
	}

	return *current, true
}

// Offer stores candidate when it is newer than the current booking and reports whether it did.
func (t *Tracker) Offer(candidate model.BookingDetail) bool {
	for {
		current := t.current.Load()
		if current != nil && !newer(candidate, *current) {
			return false
		}

		if t.current.CompareAndSwap(current, &candidate) {
			return true
		}
	}
}

func newer(candidate, current model.BookingDetail) bool {
	if candidate.CreatedAt.Equal(current.CreatedAt) {
		return sequence.Compare(model.Sequence.Prefix, candidate.ID, current.ID) > 0
	}

	return candidate.CreatedAt.After(current.CreatedAt)
}

// Poll reads the newest booking once and offers it.
func (t *Tracker) Poll(ctx context.Context) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".Latest.Poll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := t.repo.GetAllDetail(ctx, gDto.QueryParams{
		Limit:   1,
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{})
	if err != nil {
		return fmt.Errorf("failed to get latest booking: %w", err)
	}

	if len(bookings) == 0 {
		return nil
	}

	if t.Offer(bookings[0]) {
		log.Debug().Str("booking_id", bookings[0].ID).Msg("latest booking changed")
	}

	return nil
}

// Run polls until ctx is cancelled. A failed poll keeps the previous booking.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", t.interval).Msg("latest booking poller started")

	for {
		if err := t.Poll(ctx); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("latest booking poll failed")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("latest booking poller stopped")

			return
		case <-ticker.C:
		}
	}
}
