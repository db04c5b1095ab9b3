package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/internal/domains/bed/model"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Bed interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Bed) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Bed) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Bed, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Bed, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Bed, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Bed, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Bed]
}

func New(db *postgres.Connection, otel otel.Otel) Bed {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Bed](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
