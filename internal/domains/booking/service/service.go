package service

import (
	"context"
	"fmt"

	"hostel/infras/otel"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	"hostel/internal/domains/booking/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"

	"github.com/rs/zerolog/log"
)

// Booking serves the read side of bookings. Writes go through the reservation service.
type Booking interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Latest(ctx context.Context) (dto.BookingResponse, error)
	StatusCounts(ctx context.Context) (dto.StatusCountsResponse, error)
}

type serviceImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, otel otel.Otel) Booking {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// Latest returns the most recently created booking.
func (s *serviceImpl) Latest(ctx context.Context) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Latest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		Limit:   1,
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.repo.GetAllDetail(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get latest booking")

		return res, fmt.Errorf("failed to get latest booking: %w", err)
	}

	if len(bookings) == 0 {
		return res, failure.NotFound("no bookings yet") // nolint:wrapcheck
	}

	res.FromModel(bookings[0])

	return res, nil
}

// StatusCounts reports every status, including those without bookings.
func (s *serviceImpl) StatusCounts(ctx context.Context) (res dto.StatusCountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.StatusCounts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	counts, err := s.repo.StatusCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings by status")

		return res, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	res = make(dto.StatusCountsResponse, len(model.Statuses))
	for _, status := range model.Statuses {
		res[status] = counts[status]
	}

	return res, nil
}
