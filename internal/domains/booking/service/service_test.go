package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/infras/otel/mocks"
	bookingMocks "hostel/internal/domains/booking/mocks"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/service"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
)

func detail(id string) model.BookingDetail {
	return model.BookingDetail{
		Booking: model.Booking{
			ID:           id,
			RoomID:       "R1",
			BedID:        "B1",
			GuestID:      "C1",
			CheckInDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
			Status:       model.StatusBooked,
			TotalPrice:   decimal.RequireFromString("120.50"),
		},
		RoomNumber:     "101",
		BedNumber:      "BN1",
		GuestFirstName: "Ada",
		GuestLastName:  "Lovelace",
	}
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *bookingMocks.MockBooking)
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(detail("BK1"), nil)
			},
		},
		{
			name: "not found",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.BookingDetail{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(repo *bookingMocks.MockBooking) {
				repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.BookingDetail{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := bookingMocks.NewMockBooking(ctrl)
			svc := service.New(repo, mocks.NewOtel())

			tt.setupMock(repo)

			res, err := svc.Get(context.Background(), "BK1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Ada Lovelace", res.GuestFullName)
			assert.Equal(t, "2025-05-01", res.CheckInDate)
			assert.Equal(t, "2025-05-05", res.CheckOutDate)
			assert.Equal(t, "120.5", res.TotalPrice.String())
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().CountDetail(gomock.Any(), gomock.Any()).Return(11, nil)
	repo.EXPECT().GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookingDetail{detail("BK1"), detail("BK2")}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Bookings, 2)
}

func TestBookingService_Latest(t *testing.T) {
	t.Run("newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		svc := service.New(repo, mocks.NewOtel())

		repo.EXPECT().
			GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.BookingDetail, error) {
				assert.Equal(t, 1, params.Limit)
				assert.Equal(t, "bookings.created_at", params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.BookingDetail{detail("BK7")}, nil
			})

		res, err := svc.Latest(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "BK7", res.ID)
	})

	t.Run("no bookings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		svc := service.New(repo, mocks.NewOtel())

		repo.EXPECT().GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.BookingDetail{}, nil)

		_, err := svc.Latest(context.Background())

		assert.True(t, failure.Is(err, http.StatusNotFound))
	})
}

func TestBookingService_StatusCounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().StatusCounts(gomock.Any()).Return(map[model.Status]int{model.StatusBooked: 4}, nil)

	res, err := svc.StatusCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, res[model.StatusBooked])
	assert.Contains(t, res, model.StatusCancelled)
	assert.Contains(t, res, model.StatusCompleted)
	assert.Equal(t, 0, res[model.StatusCompleted])
}
