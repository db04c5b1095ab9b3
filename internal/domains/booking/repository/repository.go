package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/internal/domains/booking/model"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/logger"
	gRepo "hostel/shared/repository"

	"github.com/jmoiron/sqlx"
)

const queryStatusCounts = `SELECT status, COUNT(id) AS total FROM bookings GROUP BY status`

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error)
	CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error)
	StatusCounts(ctx context.Context) (map[model.Status]int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	detail gRepo.Repository[model.BookingDetail]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.BookingDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.BookingDetail, error) {
	return r.detail.Get(ctx, filter)
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingDetail, error) {
	return r.detail.GetAll(ctx, params, filter)
}

func (r *repositoryImpl) CountDetail(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.detail.Count(ctx, filter)
}

// StatusCounts groups bookings by status. Statuses without bookings are absent from the result.
func (r *repositoryImpl) StatusCounts(ctx context.Context) (map[model.Status]int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.StatusCounts")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryStatusCounts)

	rows := []struct {
		Status model.Status `db:"status"`
		Total  int          `db:"total"`
	}{}

	if err := r.db.Read.SelectContext(ctx, &rows, queryStatusCounts); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	counts := make(map[model.Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}

	return counts, nil
}
