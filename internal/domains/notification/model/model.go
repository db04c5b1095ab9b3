package model

import (
	"hostel/shared/sequence"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldIsRead    = "is_read"
	FieldCreatedAt = "created_at"

	TitleNewBooking   = "New Booking"
	MessageNewBooking = "New booking created by user."
)

var Sequence = sequence.Source{Prefix: "N", Table: TableName, Column: FieldID}

// Notification tells the staff about a booking. It copies the booking details it shows so it
// still reads correctly after the booking is deleted.
type Notification struct {
	ID            string          `db:"id"`
	BookingID     string          `db:"booking_id"`
	Title         string          `db:"title"`
	Message       string          `db:"message"`
	IsRead        bool            `db:"is_read"`
	GuestFullName string          `db:"guest_full_name"`
	RoomNumber    string          `db:"room_number"`
	BedNumber     string          `db:"bed_number"`
	CheckInDate   time.Time       `db:"check_in_date"`
	CheckOutDate  time.Time       `db:"check_out_date"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	CreatedAt     time.Time       `db:"created_at"`
}
