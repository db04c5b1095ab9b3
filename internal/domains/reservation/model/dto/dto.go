package dto

import (
	"net/http"
	"strconv"

	"hostel/internal/domains/reservation/availability"
	"hostel/internal/domains/reservation/model"
	"hostel/shared/constant"
	"hostel/shared/failure"

	"github.com/shopspring/decimal"
)

const (
	QueryCheckIn  = "check_in"
	QueryCheckOut = "check_out"
	QueryGuests   = "guests"
)

type CreateReservationRequest struct {
	RoomNumber   string          `json:"room_number"    validate:"required,max=20"`
	FirstName    string          `json:"first_name"     validate:"required,max=100"`
	LastName     string          `json:"last_name"      validate:"required,max=100"`
	Email        string          `json:"email"          validate:"required,email,max=100"`
	Phone        string          `json:"phone"          validate:"omitempty,max=20"`
	DateOfBirth  string          `json:"date_of_birth"  validate:"required,date"`
	CheckInDate  string          `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string          `json:"check_out_date" validate:"required,date"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	PaymentType  string          `json:"payment_type"   validate:"omitempty,oneof=CREDIT_CARD CASH PAYPAL"`
}

// ReservationResponse summarizes a committed booking.
type ReservationResponse struct {
	BookingID     string          `json:"booking_id"`
	PaymentID     string          `json:"payment_id"`
	GuestID       string          `json:"guest_id"`
	GuestFullName string          `json:"guest_full_name"`
	RoomNumber    string          `json:"room_number"`
	BedNumber     string          `json:"bed_number"`
	CheckInDate   string          `json:"check_in_date"`
	CheckOutDate  string          `json:"check_out_date"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

func (r *ReservationResponse) ToEvent(email, phone string) model.BookingConfirmedEvent {
	return model.BookingConfirmedEvent{
		BookingID:     r.BookingID,
		PaymentID:     r.PaymentID,
		GuestFullName: r.GuestFullName,
		GuestEmail:    email,
		GuestPhone:    phone,
		RoomNumber:    r.RoomNumber,
		BedNumber:     r.BedNumber,
		CheckInDate:   r.CheckInDate,
		CheckOutDate:  r.CheckOutDate,
		TotalPrice:    r.TotalPrice,
	}
}

type AvailabilityRequest struct {
	Interval availability.Interval
	Guests   int
}

// FromRequest reads check_in, check_out and guests. Guests defaults to one.
func (a *AvailabilityRequest) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	interval, err := availability.ParseInterval(query.Get(QueryCheckIn), query.Get(QueryCheckOut))
	if err != nil {
		return err
	}

	a.Interval = interval
	a.Guests = 1

	if value := query.Get(QueryGuests); value != constant.Empty {
		guests, err := strconv.Atoi(value)
		if err != nil || guests < 1 {
			return failure.BadRequestFromString("guests must be a positive number")
		}

		a.Guests = guests
	}

	return nil
}

type AvailableRoomsResponse struct {
	CheckInDate  string   `json:"check_in_date"`
	CheckOutDate string   `json:"check_out_date"`
	Guests       int      `json:"guests"`
	RoomNumbers  []string `json:"room_numbers"`
}
