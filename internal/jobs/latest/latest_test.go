package latest_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/config"
	"hostel/infras/otel/mocks"
	bookingMocks "hostel/internal/domains/booking/mocks"
	"hostel/internal/domains/booking/model"
	"hostel/internal/jobs/latest"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
)

func booking(id string, createdAt time.Time) model.BookingDetail {
	return model.BookingDetail{
		Booking: model.Booking{ID: id, Metadata: gModel.Metadata{CreatedAt: createdAt}},
	}
}

func newTracker(t *testing.T) (*latest.Tracker, *bookingMocks.MockBooking) {
	repo := bookingMocks.NewMockBooking(gomock.NewController(t))

	return latest.New(repo, &config.Config{}, mocks.NewOtel()), repo
}

func TestTracker_Offer(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tracker, _ := newTracker(t)

	_, ok := tracker.Get()
	assert.False(t, ok)

	assert.True(t, tracker.Offer(booking("BK2", base)))
	assert.False(t, tracker.Offer(booking("BK1", base.Add(-time.Minute))), "older booking must not replace a newer one")
	assert.False(t, tracker.Offer(booking("BK2", base)), "same booking is not a change")
	assert.True(t, tracker.Offer(booking("BK3", base.Add(time.Second))))

	current, ok := tracker.Get()
	require.True(t, ok)
	assert.Equal(t, "BK3", current.ID)
}

func TestTracker_OfferSameInstantPrefersHigherNumber(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tracker, _ := newTracker(t)

	assert.True(t, tracker.Offer(booking("BK9", base)))
	assert.True(t, tracker.Offer(booking("BK10", base)), "BK10 was minted after BK9")
	assert.False(t, tracker.Offer(booking("BK9", base)))

	current, ok := tracker.Get()
	require.True(t, ok)
	assert.Equal(t, "BK10", current.ID)
}

func TestTracker_OfferConcurrently(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tracker, _ := newTracker(t)

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			tracker.Offer(booking(fmt.Sprintf("BK%03d", i), base.Add(time.Duration(i)*time.Second)))
		}()
	}

	wg.Wait()

	current, ok := tracker.Get()
	require.True(t, ok)
	assert.Equal(t, "BK049", current.ID)
}

func TestTracker_Poll(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("stores the newest booking", func(t *testing.T) {
		tracker, repo := newTracker(t)

		repo.EXPECT().GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookingDetail{booking("BK7", base)}, nil)

		require.NoError(t, tracker.Poll(context.Background()))

		current, ok := tracker.Get()
		require.True(t, ok)
		assert.Equal(t, "BK7", current.ID)
	})

	t.Run("empty store keeps nothing", func(t *testing.T) {
		tracker, repo := newTracker(t)

		repo.EXPECT().GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		require.NoError(t, tracker.Poll(context.Background()))

		_, ok := tracker.Get()
		assert.False(t, ok)
	})

	t.Run("failure keeps the previous booking", func(t *testing.T) {
		tracker, repo := newTracker(t)
		tracker.Offer(booking("BK1", base))

		repo.EXPECT().GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		assert.Error(t, tracker.Poll(context.Background()))

		current, _ := tracker.Get()
		assert.Equal(t, "BK1", current.ID)
	})
}

func TestTracker_RunStopsWithContext(t *testing.T) {
	tracker, repo := newTracker(t)

	ctx, cancel := context.WithCancel(context.Background())

	repo.EXPECT().
		GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.QueryParams, gDto.FilterGroup) ([]model.BookingDetail, error) {
			cancel()

			return nil, nil
		}).
		MinTimes(1)

	done := make(chan struct{})

	go func() {
		tracker.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
}
