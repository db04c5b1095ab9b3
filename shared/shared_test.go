package shared_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostel/shared"
	cacheMocks "hostel/shared/cache/mocks"
	"hostel/shared/constant"
	"hostel/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "true", want: boolPtr(true)},
		{input: "1", want: boolPtr(true)},
		{input: "false", want: boolPtr(false)},
		{input: "unread", want: nil},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	floor := 3

	assert.Equal(t, &floor, shared.ConvertStringToInt("3"))
	assert.Nil(t, shared.ConvertStringToInt(""))
	assert.Nil(t, shared.ConvertStringToInt("third"))
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name         string
		total, limit int
		want         int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "no limit", total: 25, limit: 0, want: 1},
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "single row", total: 1, limit: 50, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type guestUpdate struct {
		FirstName  string  `db:"first_name"`
		Email      string  `db:"email"`
		Phone      *string `db:"phone"`
		RoomNumber string  `db:"-"`
		Note       string
	}

	phone := "+4930123"

	t.Run("keeps set columns only", func(t *testing.T) {
		fields := shared.TransformFields(guestUpdate{FirstName: "Ana", Phone: &phone, Note: "ignored"}, "admin-1")

		assert.Equal(t, "Ana", fields["first_name"])
		assert.Equal(t, &phone, fields["phone"])
		assert.NotContains(t, fields, "email")
		assert.NotContains(t, fields, "Note")
		assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
		assert.WithinDuration(t, time.Now(), fields[constant.FieldModifiedAt].(time.Time), time.Minute)
	})

	t.Run("empty update only stamps metadata", func(t *testing.T) {
		fields := shared.TransformFields(guestUpdate{}, "admin-2")

		assert.Len(t, fields, 2)
		assert.Equal(t, "admin-2", fields[constant.FieldModifiedBy])
	})
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("BK7", "id", "bookings")

	assert.Len(t, group.Filters, 1)

	filter, ok := group.Filters[0].(dto.Filter)

	assert.True(t, ok)
	assert.Equal(t, dto.Filter{Field: "id", Value: "BK7", Operator: dto.FilterOperatorEq, Table: "bookings"}, filter)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:gets", shared.BuildCacheKey("room:gets"))
	assert.Equal(t, "room:get:R1", shared.BuildCacheKey("room:get", "R1"))
	assert.Equal(t, "bed:room:R1:B2", shared.BuildCacheKey("bed:room", "R1", "B2"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "room_number", SortDir: dto.SortDirAsc}
	booked := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "Booked", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
		Operator: dto.FilterGroupOperatorAnd,
	}
	cancelled := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "status", Value: "Cancelled", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
		Operator: dto.FilterGroupOperatorAnd,
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, booked)
	again := shared.BuildCacheKeyWithQuery("booking:gets", params, booked)
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, cancelled)
	nextPage := shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, booked)

	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, first, nextPage)
	assert.Contains(t, first, "booking:gets:")
	assert.Contains(t, first, "status=Booked")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}
