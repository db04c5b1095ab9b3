package model_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/domains/booking/model"
	"hostel/shared/failure"
)

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, status)

	_, err = model.ParseStatus("Pending")
	assert.True(t, failure.Is(err, http.StatusUnprocessableEntity))
}

func TestActiveOverlap(t *testing.T) {
	in := time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)
	out := time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC)

	group := model.ActiveOverlap("R1", in, out)
	where, args := group.GetWhereClause()

	assert.Equal(t,
		"(bookings.status = :status AND bookings.check_in_date < :range_end AND bookings.check_out_date > :range_start AND bookings.room_id = :room_id)",
		where,
	)
	assert.Equal(t, model.StatusBooked, args["status"])
	assert.Equal(t, out, args["range_end"])
	assert.Equal(t, in, args["range_start"])

	all := model.ActiveOverlap("", in, out)
	_, args = all.GetWhereClause()
	assert.NotContains(t, args, "room_id")
}
