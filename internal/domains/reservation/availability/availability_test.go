package availability_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bedModel "hostel/internal/domains/bed/model"
	bookingModel "hostel/internal/domains/booking/model"
	"hostel/internal/domains/reservation/availability"
	"hostel/shared/failure"
)

func day(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func stay(t *testing.T, checkIn, checkOut string) availability.Interval {
	t.Helper()

	interval, err := availability.ParseInterval(checkIn, checkOut)
	require.NoError(t, err)

	return interval
}

func booked(bedID, checkIn, checkOut string) bookingModel.Booking {
	return bookingModel.Booking{
		BedID:        bedID,
		CheckInDate:  day(checkIn),
		CheckOutDate: day(checkOut),
		Status:       bookingModel.StatusBooked,
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantCode int
	}{
		{name: "one night", checkIn: "2025-05-01", checkOut: "2025-05-02"},
		{name: "same day", checkIn: "2025-05-01", checkOut: "2025-05-01", wantCode: http.StatusBadRequest},
		{name: "reversed", checkIn: "2025-05-03", checkOut: "2025-05-01", wantCode: http.StatusBadRequest},
		{name: "malformed check in", checkIn: "05/01/2025", checkOut: "2025-05-02", wantCode: http.StatusBadRequest},
		{name: "malformed check out", checkIn: "2025-05-01", checkOut: "tomorrow", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := availability.ParseInterval(tt.checkIn, tt.checkOut)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestInterval_Overlaps(t *testing.T) {
	base := stay(t, "2025-05-01", "2025-05-05")

	tests := []struct {
		name  string
		other availability.Interval
		want  bool
	}{
		{name: "inside", other: stay(t, "2025-05-02", "2025-05-03"), want: true},
		{name: "covering", other: stay(t, "2025-04-28", "2025-05-10"), want: true},
		{name: "straddling start", other: stay(t, "2025-04-29", "2025-05-02"), want: true},
		{name: "straddling end", other: stay(t, "2025-05-04", "2025-05-06"), want: true},
		{name: "check in on check out day", other: stay(t, "2025-05-05", "2025-05-07"), want: false},
		{name: "check out on check in day", other: stay(t, "2025-04-28", "2025-05-01"), want: false},
		{name: "disjoint", other: stay(t, "2025-06-01", "2025-06-02"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestIndex_IsFree(t *testing.T) {
	index := availability.NewIndex([]bookingModel.Booking{
		booked("B1", "2025-05-10", "2025-05-12"),
		booked("B1", "2025-05-01", "2025-05-05"),
		booked("B1", "2025-05-20", "2025-05-25"),
		{BedID: "B2", CheckInDate: day("2025-05-01"), CheckOutDate: day("2025-05-30"), Status: bookingModel.StatusCancelled},
	})

	tests := []struct {
		name     string
		bedID    string
		interval availability.Interval
		want     bool
	}{
		{name: "gap between stays", bedID: "B1", interval: stay(t, "2025-05-05", "2025-05-10"), want: true},
		{name: "overlaps middle stay", bedID: "B1", interval: stay(t, "2025-05-11", "2025-05-13"), want: false},
		{name: "overlaps first stay", bedID: "B1", interval: stay(t, "2025-04-30", "2025-05-02"), want: false},
		{name: "after last stay", bedID: "B1", interval: stay(t, "2025-05-25", "2025-05-28"), want: true},
		{name: "spans several stays", bedID: "B1", interval: stay(t, "2025-05-04", "2025-05-21"), want: false},
		{name: "cancelled booking ignored", bedID: "B2", interval: stay(t, "2025-05-02", "2025-05-03"), want: true},
		{name: "unknown bed", bedID: "B9", interval: stay(t, "2025-05-02", "2025-05-03"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, index.IsFree(tt.bedID, tt.interval))
		})
	}
}

func TestIndex_LongStayHiddenBehindShortOnes(t *testing.T) {
	// Legacy rows may overlap each other; a long stay must still block later nights.
	index := availability.NewIndex([]bookingModel.Booking{
		booked("B1", "2025-05-01", "2025-05-31"),
		booked("B1", "2025-05-02", "2025-05-03"),
	})

	assert.False(t, index.IsFree("B1", stay(t, "2025-05-20", "2025-05-21")))
}

func TestIndex_RoomScenario(t *testing.T) {
	beds := []bedModel.Bed{{ID: "B1", BedNumber: "BN1", RoomID: "R1"}, {ID: "B2", BedNumber: "BN2", RoomID: "R1"}}
	index := availability.NewIndex([]bookingModel.Booking{booked("B1", "2025-05-01", "2025-05-05")})
	request := stay(t, "2025-05-03", "2025-05-04")

	free := index.FreeBeds(beds, request)

	require.Len(t, free, 1)
	assert.Equal(t, "B2", free[0].ID)

	first, ok := index.FirstFree(beds, request)
	require.True(t, ok)
	assert.Equal(t, "B2", first.ID)

	assert.Equal(t, free, index.FreeBeds(beds, request))
}

func TestIndex_FirstFreeNone(t *testing.T) {
	beds := []bedModel.Bed{{ID: "B1"}}
	index := availability.NewIndex([]bookingModel.Booking{booked("B1", "2025-05-01", "2025-05-05")})

	_, ok := index.FirstFree(beds, stay(t, "2025-05-01", "2025-05-02"))

	assert.False(t, ok)
}
