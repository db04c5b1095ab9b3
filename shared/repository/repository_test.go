package repository

import (
	"context"
	"hostel/infras/otel/mocks"
	"hostel/shared/dto"
	"hostel/shared/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

type bedRow struct {
	ID        string `db:"id"`
	RoomID    string `db:"room_id"`
	BedNumber string `db:"bed_number"`
	model.Metadata
}

type bedWithRoom struct {
	ID         string `db:"id"`
	RoomID     string `db:"room_id"`
	RoomNumber string `column:"room_number" db:"room_number" table:"rooms"`
	Ignored    string `db:"-"`
}

func (bedWithRoom) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = beds.room_id"
}

func TestNewRepository_Columns(t *testing.T) {
	repo := NewRepository[bedRow]("bed", "beds", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"id", "room_id", "bed_number", "created_at", "modified_at", "created_by", "modified_by"}, repo.InsertColumns)
	assert.Empty(t, repo.join)
	assert.Equal(t, "beds.id, beds.room_id", repo.getSelectQuery(context.Background(), "id", "room_id"))
}

func TestNewRepository_JoinColumns(t *testing.T) {
	repo := NewRepository[bedWithRoom]("bed", "beds", "id", nil, mocks.NewOtel())

	assert.Equal(t, []string{"id", "room_id"}, repo.InsertColumns)
	assert.Equal(t, "JOIN rooms ON rooms.id = beds.room_id", repo.join)
	assert.Equal(t, "beds.id, beds.room_id, rooms.room_number AS room_number", repo.getSelectQuery(context.Background()))
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[bedRow]("bed", "beds", "id", nil, mocks.NewOtel())

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(context.Background(), dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "R1", Operator: dto.FilterOperatorEq, Table: "beds"},
		},
	})
	assert.Equal(t, " WHERE (beds.room_id = :room_id) ", where)
	assert.Equal(t, map[string]any{"room_id": "R1"}, args)
}

func TestWritesRequireFilter(t *testing.T) {
	repo := NewRepository[bedRow]("bed", "beds", "id", nil, mocks.NewOtel())

	assert.ErrorIs(t, repo.delete(context.Background(), nil, dto.FilterGroup{}), errRequiredFilter)
	assert.ErrorIs(t, repo.update(context.Background(), nil, map[string]any{"bed_number": "BN2"}, dto.FilterGroup{}), errRequiredFilter)
}
