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
	paymentMocks "hostel/internal/domains/payment/mocks"
	"hostel/internal/domains/payment/model"
	"hostel/internal/domains/payment/service"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
)

func TestPaymentService_GetByBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := paymentMocks.NewMockPayment(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Payment, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "payments.booking_id")
			assert.Contains(t, args, "booking_id")

			return model.Payment{
				ID:          "PY1",
				BookingID:   "BK1",
				PaymentType: model.TypeCash,
				Amount:      decimal.RequireFromString("80.00"),
				PaymentDate: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
			}, nil
		})

	res, err := svc.GetByBooking(context.Background(), "BK1")

	require.NoError(t, err)
	assert.Equal(t, "PY1", res.ID)
	assert.Equal(t, model.TypeCash, res.PaymentType)
	assert.True(t, res.Amount.Equal(decimal.NewFromInt(80)))
}

func TestPaymentService_Get(t *testing.T) {
	tests := []struct {
		name     string
		payment  model.Payment
		repoErr  error
		wantCode int
	}{
		{name: "found", payment: model.Payment{ID: "PY1", BookingID: "BK1"}},
		{name: "not found", wantCode: http.StatusNotFound},
		{name: "repository failure", repoErr: errors.New("connection reset"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := paymentMocks.NewMockPayment(ctrl)
			svc := service.New(repo, mocks.NewOtel())

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.payment, tt.repoErr)

			res, err := svc.Get(context.Background(), "PY1")

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, tt.payment.ID, res.ID)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestPaymentService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := paymentMocks.NewMockPayment(ctrl)
	svc := service.New(repo, mocks.NewOtel())

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Payment, error) {
			assert.Equal(t, "payments.payment_date", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Payment{{ID: "PY3"}, {ID: "PY2"}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 2}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Payments, 2)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, 3, res.TotalData)
}
