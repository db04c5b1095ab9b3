package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	"hostel/shared/failure"
)

func TestBookingFilter_FromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantWhere string
	}{
		{
			name:      "no filters",
			query:     "",
			wantWhere: "",
		},
		{
			name:      "status and date range",
			query:     "?status=booked&check_in_from=2025-05-01&check_in_to=2025-05-31",
			wantWhere: "(bookings.status = :status AND bookings.check_in_date >= :check_in_from AND bookings.check_in_date <= :check_in_to)",
		},
		{
			name:      "guest names",
			query:     "?first_name=ada&last_name=love",
			wantWhere: "(LOWER(guests.first_name) LIKE LOWER(:first_name)  AND LOWER(guests.last_name) LIKE LOWER(:last_name) )",
		},
		{
			name:     "unknown status",
			query:    "?status=Pending",
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "malformed date",
			query:    "?check_in_from=01.05.2025",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/v1/bookings"+tt.query, nil)

			filter := dto.BookingFilter{}
			err := filter.FromRequest(request)

			if tt.wantCode != 0 {
				assert.True(t, failure.Is(err, tt.wantCode), "got %v", err)

				return
			}

			require.NoError(t, err)

			group := filter.ToFilterGroup()
			where, _ := group.GetWhereClause()
			assert.Equal(t, tt.wantWhere, where)
		})
	}
}

func TestBookingFilter_StatusValue(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/v1/bookings?status=COMPLETED", nil)

	filter := dto.BookingFilter{}
	require.NoError(t, filter.FromRequest(request))

	group := filter.ToFilterGroup()
	_, args := group.GetWhereClause()
	assert.Equal(t, model.StatusCompleted, args["status"])
}
