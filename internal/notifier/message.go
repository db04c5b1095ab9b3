package notifier

import (
	"fmt"

	"hostel/infras/mailer"
	contactModel "hostel/internal/domains/contact/model"
	reservationModel "hostel/internal/domains/reservation/model"
)

func ConfirmationMail(event reservationModel.BookingConfirmedEvent, hostel string) mailer.Mail {
	text := fmt.Sprintf(
		"Hello %s,\n\nYour booking has been confirmed.\n\nDetails:\nRoom: %s\nBed: %s\nCheck-In: %s\nCheck-Out: %s\nTotal Price: €%s\n\nThank you for choosing %s!",
		event.GuestFullName,
		event.RoomNumber,
		event.BedNumber,
		event.CheckInDate,
		event.CheckOutDate,
		event.TotalPrice.StringFixed(2),
		hostel,
	)

	return mailer.Mail{
		To:      event.GuestEmail,
		Subject: "Booking Confirmation - " + hostel,
		Text:    text,
	}
}

func ConfirmationSMS(event reservationModel.BookingConfirmedEvent) string {
	return fmt.Sprintf(
		"Hello %s, your booking (Room %s, Bed %s) from %s to %s is confirmed. Total: €%s",
		event.GuestFullName,
		event.RoomNumber,
		event.BedNumber,
		event.CheckInDate,
		event.CheckOutDate,
		event.TotalPrice.StringFixed(2),
	)
}

// ContactSMS keeps the alert short; the full message stays in the admin inbox.
func ContactSMS(event contactModel.ReceivedEvent) string {
	message := []rune(event.Message)
	if len(message) > 120 {
		message = append(message[:117], []rune("...")...)
	}

	return fmt.Sprintf("New contact message from %s (%s): %s", event.Name, event.Email, string(message))
}
