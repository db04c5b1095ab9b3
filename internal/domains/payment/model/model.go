package model

import (
	"hostel/shared/failure"
	"hostel/shared/sequence"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldPaymentType = "payment_type"
	FieldAmount      = "amount"
	FieldPaymentDate = "payment_date"
)

var Sequence = sequence.Source{Prefix: "PY", Table: TableName, Column: FieldID}

type Type string

const (
	TypeCreditCard Type = "CREDIT_CARD"
	TypeCash       Type = "CASH"
	TypePaypal     Type = "PAYPAL"
)

var Types = []Type{TypeCreditCard, TypeCash, TypePaypal}

// ParseType matches value against the known payment types, ignoring case.
func ParseType(value string) (Type, error) {
	for _, paymentType := range Types {
		if strings.EqualFold(string(paymentType), strings.TrimSpace(value)) {
			return paymentType, nil
		}
	}

	return "", failure.InvalidState("unknown payment type: " + value)
}

// Payment is immutable once written. It lives and dies with its booking.
type Payment struct {
	ID          string          `db:"id"`
	BookingID   string          `db:"booking_id"`
	PaymentType Type            `db:"payment_type"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate time.Time       `db:"payment_date"`
}
