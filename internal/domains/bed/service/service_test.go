package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/config"
	"hostel/infras/otel/mocks"
	pgMocks "hostel/infras/postgres/mocks"
	bedMocks "hostel/internal/domains/bed/mocks"
	"hostel/internal/domains/bed/model"
	"hostel/internal/domains/bed/service"
	roomMocks "hostel/internal/domains/room/mocks"
	roomModel "hostel/internal/domains/room/model"
	cacheMocks "hostel/shared/cache/mocks"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	seqMocks "hostel/shared/sequence/mocks"
)

func newService(t *testing.T) (service.Bed, *bedMocks.MockBed, *roomMocks.MockRoom, *seqMocks.MockGenerator, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	repo := bedMocks.NewMockBed(ctrl)
	rooms := roomMocks.NewMockRoom(ctrl)
	transactor := pgMocks.NewMockTransactor(ctrl)
	generator := seqMocks.NewMockGenerator(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(repo, rooms, transactor, generator, cfg, redis, mocks.NewOtel()), repo, rooms, generator, redis
}

func TestBedService_Add(t *testing.T) {
	room := roomModel.Room{ID: "R1", RoomNumber: "101", Capacity: 2}

	tests := []struct {
		name      string
		setupMock func(repo *bedMocks.MockBed, rooms *roomMocks.MockRoom, generator *seqMocks.MockGenerator)
		wantCode  int
	}{
		{
			name: "room not found",
			setupMock: func(_ *bedMocks.MockBed, rooms *roomMocks.MockRoom, _ *seqMocks.MockGenerator) {
				rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "room at capacity",
			setupMock: func(repo *bedMocks.MockBed, rooms *roomMocks.MockRoom, _ *seqMocks.MockGenerator) {
				rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
				repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(2, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "bed added",
			setupMock: func(repo *bedMocks.MockBed, rooms *roomMocks.MockRoom, generator *seqMocks.MockGenerator) {
				rooms.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
				repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
				generator.EXPECT().Next(gomock.Any(), gomock.Any(), model.Sequence).Return("B2", nil)
				generator.EXPECT().Next(gomock.Any(), gomock.Any(), model.NumberSequence).Return("BN2", nil)
				repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, rooms, generator, _ := newService(t)
			tt.setupMock(repo, rooms, generator)

			res, err := svc.Add(context.Background(), "R1")

			if tt.wantCode != 0 {
				assert.True(t, failure.Is(err, tt.wantCode), "got %v", err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "B2", res.ID)
			assert.Equal(t, "BN2", res.BedNumber)
			assert.Equal(t, "101", res.RoomNumber)
		})
	}
}

func TestBedService_GetAll(t *testing.T) {
	svc, repo, _, _, redis := newService(t)

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Bed{
		{ID: "B9", BedNumber: "BN11"},
		{ID: "B2", BedNumber: "BN3"},
		{ID: "B1", BedNumber: "BN1"},
	}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "BN1", res.Beds[0].BedNumber)
	assert.Equal(t, "BN11", res.Beds[2].BedNumber)
}

func TestBedService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, repo, _, _, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bed{}, nil)

		assert.True(t, failure.Is(svc.Delete(context.Background(), "B1"), http.StatusNotFound))
	})

	t.Run("referenced by bookings", func(t *testing.T) {
		svc, repo, _, _, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bed{ID: "B1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(failure.Conflict("bookings_bed_id_fkey"))

		assert.True(t, failure.Is(svc.Delete(context.Background(), "B1"), http.StatusConflict))
	})

	t.Run("deleted", func(t *testing.T) {
		svc, repo, _, _, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Bed{ID: "B1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "B1"))
	})
}
