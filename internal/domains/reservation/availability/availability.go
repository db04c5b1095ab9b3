// Package availability answers whether beds are free over a stay.
//
// An Index is built from the Booked bookings that intersect the stay being asked about, so
// callers run one range query and then test any number of beds in memory.
package availability

import (
	"slices"
	"sort"
	"time"

	bedModel "hostel/internal/domains/bed/model"
	bookingModel "hostel/internal/domains/booking/model"
	"hostel/shared/failure"
	"hostel/shared/timezone"
)

// Interval is a stay of whole days, [CheckIn, CheckOut). A guest checking out on a day frees
// the bed for a guest checking in that same day.
type Interval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewInterval truncates both ends to calendar days and requires at least one night.
func NewInterval(checkIn, checkOut time.Time) (Interval, error) {
	interval := Interval{CheckIn: timezone.DateOf(checkIn), CheckOut: timezone.DateOf(checkOut)}

	if !interval.CheckOut.After(interval.CheckIn) {
		return interval, failure.BadRequestFromString("check_out_date must be after check_in_date")
	}

	return interval, nil
}

// ParseInterval reads two YYYY-MM-DD dates.
func ParseInterval(checkIn, checkOut string) (Interval, error) {
	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return Interval{}, failure.BadRequestFromString("check_in_date must be a date formatted as YYYY-MM-DD")
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return Interval{}, failure.BadRequestFromString("check_out_date must be a date formatted as YYYY-MM-DD")
	}

	return NewInterval(in, out)
}

// Overlaps reports whether both stays share at least one night.
func (i Interval) Overlaps(other Interval) bool {
	return i.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(i.CheckOut)
}

type bedTimeline struct {
	stays []Interval
	// maxOut[k] is the latest CheckOut among stays[0..k].
	maxOut []time.Time
}

func (t *bedTimeline) isFree(interval Interval) bool {
	// stays from n onwards start on or after the requested check-out.
	n := sort.Search(len(t.stays), func(k int) bool {
		return !t.stays[k].CheckIn.Before(interval.CheckOut)
	})
	if n == 0 {
		return true
	}

	return !t.maxOut[n-1].After(interval.CheckIn)
}

// Index holds Booked stays per bed, ordered by check-in.
type Index struct {
	beds map[string]*bedTimeline
}

// NewIndex keeps only bookings in the Booked status.
func NewIndex(bookings []bookingModel.Booking) *Index {
	grouped := map[string][]Interval{}

	for _, booking := range bookings {
		if booking.Status != bookingModel.StatusBooked {
			continue
		}

		grouped[booking.BedID] = append(grouped[booking.BedID], Interval{
			CheckIn:  timezone.DateOf(booking.CheckInDate),
			CheckOut: timezone.DateOf(booking.CheckOutDate),
		})
	}

	index := &Index{beds: make(map[string]*bedTimeline, len(grouped))}

	for bedID, stays := range grouped {
		slices.SortFunc(stays, func(a, b Interval) int {
			return a.CheckIn.Compare(b.CheckIn)
		})

		maxOut := make([]time.Time, len(stays))
		for k, stay := range stays {
			maxOut[k] = stay.CheckOut
			if k > 0 && maxOut[k-1].After(stay.CheckOut) {
				maxOut[k] = maxOut[k-1]
			}
		}

		index.beds[bedID] = &bedTimeline{stays: stays, maxOut: maxOut}
	}

	return index
}

// IsFree reports whether no Booked stay on the bed overlaps interval.
func (x *Index) IsFree(bedID string, interval Interval) bool {
	timeline, ok := x.beds[bedID]
	if !ok {
		return true
	}

	return timeline.isFree(interval)
}

// FreeBeds returns the beds that are free over interval, keeping the order of beds.
func (x *Index) FreeBeds(beds []bedModel.Bed, interval Interval) []bedModel.Bed {
	free := make([]bedModel.Bed, 0, len(beds))

	for _, bed := range beds {
		if x.IsFree(bed.ID, interval) {
			free = append(free, bed)
		}
	}

	return free
}

// FirstFree returns the first free bed of beds.
func (x *Index) FirstFree(beds []bedModel.Bed, interval Interval) (bedModel.Bed, bool) {
	for _, bed := range beds {
		if x.IsFree(bed.ID, interval) {
			return bed, true
		}
	}

	return bedModel.Bed{}, false
}
