package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/internal/domains/contact/model"
	gDto "hostel/shared/dto"
	gRepo "hostel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type ContactMessage interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.ContactMessage) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ContactMessage, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ContactMessage]
}

func New(db *postgres.Connection, otel otel.Otel) ContactMessage {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ContactMessage](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
