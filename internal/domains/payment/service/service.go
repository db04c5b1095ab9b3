package service

import (
	"context"
	"fmt"

	"hostel/infras/otel"
	"hostel/internal/domains/payment/model"
	"hostel/internal/domains/payment/model/dto"
	"hostel/internal/domains/payment/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"

	"github.com/rs/zerolog/log"
)

// Payment is read-only. Payments are written by the reservation service with their booking.
type Payment interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo repository.Payment
	otel otel.Otel
}

func New(repo repository.Payment, otel otel.Otel) Payment {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payment.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + model.FieldPaymentDate
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	payments, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(payments, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payment.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payment.GetByBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (res dto.PaymentResponse, err error) {
	payment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}
