package model

import (
	"github.com/shopspring/decimal"
)

// BookingConfirmedEvent is published after a booking commits. It carries everything the
// confirmation messages need, so consumers never read the store.
type BookingConfirmedEvent struct {
	BookingID     string          `json:"booking_id"`
	PaymentID     string          `json:"payment_id"`
	GuestFullName string          `json:"guest_full_name"`
	GuestEmail    string          `json:"guest_email"`
	GuestPhone    string          `json:"guest_phone"`
	RoomNumber    string          `json:"room_number"`
	BedNumber     string          `json:"bed_number"`
	CheckInDate   string          `json:"check_in_date"`
	CheckOutDate  string          `json:"check_out_date"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}
