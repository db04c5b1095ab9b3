package model

import (
	"hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/model"
	"hostel/shared/sequence"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldRoomID       = "room_id"
	FieldBedID        = "bed_id"
	FieldGuestID      = "guest_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
	FieldTotalPrice   = "total_price"
	FieldCreatedAt    = "created_at"
)

var Sequence = sequence.Source{Prefix: "BK", Table: TableName, Column: FieldID}

type Status string

const (
	StatusBooked    Status = "Booked"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Statuses lists every lifecycle status in display order.
var Statuses = []Status{StatusBooked, StatusCancelled, StatusCompleted}

// ParseStatus matches value against the known statuses, ignoring case.
func ParseStatus(value string) (Status, error) {
	for _, status := range Statuses {
		if strings.EqualFold(string(status), strings.TrimSpace(value)) {
			return status, nil
		}
	}

	return "", failure.InvalidState("unknown booking status: " + value)
}

type Booking struct {
	ID           string          `db:"id"`
	RoomID       string          `db:"room_id"`
	BedID        string          `db:"bed_id"`
	GuestID      string          `db:"guest_id"`
	CheckInDate  time.Time       `db:"check_in_date"`
	CheckOutDate time.Time       `db:"check_out_date"`
	Status       Status          `db:"status"`
	TotalPrice   decimal.Decimal `db:"total_price"`
	model.Metadata
}

// BookingDetail is a booking joined with its room, bed and guest.
type BookingDetail struct {
	Booking
	RoomNumber     string `db:"room_number"      table:"rooms"`
	BedNumber      string `db:"bed_number"       table:"beds"`
	GuestFirstName string `db:"guest_first_name" table:"guests" column:"first_name"`
	GuestLastName  string `db:"guest_last_name"  table:"guests" column:"last_name"`
	GuestEmail     string `db:"guest_email"      table:"guests" column:"email"`
	GuestPhone     string `db:"guest_phone"      table:"guests" column:"phone"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN rooms ON rooms.id = bookings.room_id " +
		"JOIN beds ON beds.id = bookings.bed_id " +
		"JOIN guests ON guests.id = bookings.guest_id"
}

func (d BookingDetail) GuestFullName() string {
	return d.GuestFirstName + " " + d.GuestLastName
}

// ActiveOverlap matches Booked bookings of a room whose stay intersects [checkIn, checkOut).
// An empty roomID matches every room.
func ActiveOverlap(roomID string, checkIn, checkOut time.Time) dto.FilterGroup {
	filters := []any{
		dto.Filter{
			Field:    FieldStatus,
			Operator: dto.FilterOperatorEq,
			Value:    StatusBooked,
			Table:    TableName,
		},
		dto.Filter{
			ArgName:  "range_end",
			Field:    FieldCheckInDate,
			Operator: dto.FilterOperatorLess,
			Value:    checkOut,
			Table:    TableName,
		},
		dto.Filter{
			ArgName:  "range_start",
			Field:    FieldCheckOutDate,
			Operator: dto.FilterOperatorGreater,
			Value:    checkIn,
			Table:    TableName,
		},
	}

	if roomID != "" {
		filters = append(filters, dto.Filter{
			Field:    FieldRoomID,
			Operator: dto.FilterOperatorEq,
			Value:    roomID,
			Table:    TableName,
		})
	}

	return dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd, Filters: filters}
}
