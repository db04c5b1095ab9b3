package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/config"
	"hostel/infras/mailer"
	mailerMocks "hostel/infras/mailer/mocks"
	"hostel/infras/otel/mocks"
	s3Mocks "hostel/infras/s3/mocks"
	smsMocks "hostel/infras/sms/mocks"
	contactModel "hostel/internal/domains/contact/model"
	reservationModel "hostel/internal/domains/reservation/model"
	"hostel/internal/notifier"
)

type fixture struct {
	mailer  *mailerMocks.MockMailer
	sms     *smsMocks.MockSMS
	storage *s3Mocks.MockS3
	cfg     *config.Config
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Notification.Enable = true
	cfg.Notification.ContactPhone = "+4930000000"
	cfg.Reservation.HostelName = "Inn Berlin Hostel"
	cfg.External.Breaker.MaxRequests = 1
	cfg.External.Breaker.TimeoutSeconds = 60
	cfg.External.Breaker.ConsecutiveFailures = 3

	return fixture{
		mailer:  mailerMocks.NewMockMailer(ctrl),
		sms:     smsMocks.NewMockSMS(ctrl),
		storage: s3Mocks.NewMockS3(ctrl),
		cfg:     cfg,
	}
}

func (f fixture) dispatcher() *notifier.Dispatcher {
	return notifier.New(f.cfg, f.mailer, f.sms, f.storage, mocks.NewOtel())
}

func confirmed() reservationModel.BookingConfirmedEvent {
	return reservationModel.BookingConfirmedEvent{
		BookingID:     "BK1",
		PaymentID:     "PY1",
		GuestFullName: "Ada Lovelace",
		GuestEmail:    "ada@example.com",
		GuestPhone:    "+4930123456",
		RoomNumber:    "101",
		BedNumber:     "BN2",
		CheckInDate:   "2025-05-03",
		CheckOutDate:  "2025-05-04",
		TotalPrice:    decimal.RequireFromString("35.5"),
	}
}

func encode(t *testing.T, value any) kafkaGo.Message {
	t.Helper()

	payload, err := json.Marshal(value)
	require.NoError(t, err)

	return kafkaGo.Message{Topic: "booking.confirmed", Value: payload}
}

func TestConfirmationMessages(t *testing.T) {
	mail := notifier.ConfirmationMail(confirmed(), "Inn Berlin Hostel")

	assert.Equal(t, "ada@example.com", mail.To)
	assert.Equal(t, "Booking Confirmation - Inn Berlin Hostel", mail.Subject)
	assert.Equal(t,
		"Hello Ada Lovelace,\n\nYour booking has been confirmed.\n\nDetails:\nRoom: 101\nBed: BN2\n"+
			"Check-In: 2025-05-03\nCheck-Out: 2025-05-04\nTotal Price: €35.50\n\nThank you for choosing Inn Berlin Hostel!",
		mail.Text,
	)

	assert.Equal(t,
		"Hello Ada Lovelace, your booking (Room 101, Bed BN2) from 2025-05-03 to 2025-05-04 is confirmed. Total: €35.50",
		notifier.ConfirmationSMS(confirmed()),
	)
}

func TestContactSMS(t *testing.T) {
	short := notifier.ContactSMS(contactModel.ReceivedEvent{Name: "Bob", Email: "bob@example.com", Message: "Is breakfast included?"})
	assert.Equal(t, "New contact message from Bob (bob@example.com): Is breakfast included?", short)

	long := notifier.ContactSMS(contactModel.ReceivedEvent{Name: "Bob", Email: "bob@example.com", Message: strings.Repeat("ä", 200)})
	assert.True(t, strings.HasSuffix(long, strings.Repeat("ä", 117)+"..."))
}

func TestDispatcher_HandleBookingConfirmed(t *testing.T) {
	t.Run("sends email and sms", func(t *testing.T) {
		f := newFixture(t)

		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mail mailer.Mail) error {
				assert.Equal(t, "ada@example.com", mail.To)

				return nil
			})
		f.sms.EXPECT().Send(gomock.Any(), "+4930123456", gomock.Any()).Return(nil)

		assert.NoError(t, f.dispatcher().HandleBookingConfirmed(context.Background(), encode(t, confirmed())))
	})

	t.Run("archives the receipt when enabled", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Notification.ReceiptArchive = true

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		f.sms.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.storage.EXPECT().
			Upload(gomock.Any(), "receipts", "BK1.txt", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, data []byte) (string, error) {
				assert.Contains(t, string(data), "Room: 101")

				return "https://bucket/receipts/BK1.txt", nil
			})

		assert.NoError(t, f.dispatcher().HandleBookingConfirmed(context.Background(), encode(t, confirmed())))
	})

	t.Run("email failure does not stop the sms", func(t *testing.T) {
		f := newFixture(t)

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
		f.sms.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := f.dispatcher().HandleBookingConfirmed(context.Background(), encode(t, confirmed()))

		assert.ErrorContains(t, err, "smtp down")
	})

	t.Run("no phone means no sms", func(t *testing.T) {
		f := newFixture(t)

		event := confirmed()
		event.GuestPhone = ""

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.dispatcher().HandleBookingConfirmed(context.Background(), encode(t, event)))
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Notification.Enable = false

		assert.NoError(t, f.dispatcher().HandleBookingConfirmed(context.Background(), encode(t, confirmed())))
	})

	t.Run("malformed payload", func(t *testing.T) {
		f := newFixture(t)

		err := f.dispatcher().HandleBookingConfirmed(context.Background(), kafkaGo.Message{Value: []byte("{")})

		assert.Error(t, err)
	})
}

func TestDispatcher_HandleContactReceived(t *testing.T) {
	event := contactModel.ReceivedEvent{ID: "M1", Name: "Bob", Email: "bob@example.com", Message: "Late check-in?"}

	t.Run("alerts the hostel phone", func(t *testing.T) {
		f := newFixture(t)

		f.sms.EXPECT().Send(gomock.Any(), "+4930000000", notifier.ContactSMS(event)).Return(nil)

		assert.NoError(t, f.dispatcher().HandleContactReceived(context.Background(), encode(t, event)))
	})

	t.Run("no hostel phone configured", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Notification.ContactPhone = ""

		assert.NoError(t, f.dispatcher().HandleContactReceived(context.Background(), encode(t, event)))
	})

	t.Run("breaker opens after repeated failures", func(t *testing.T) {
		f := newFixture(t)
		d := f.dispatcher()

		f.sms.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("twilio down")).Times(3)

		for range 3 {
			assert.ErrorContains(t, d.HandleContactReceived(context.Background(), encode(t, event)), "twilio down")
		}

		assert.ErrorContains(t, d.HandleContactReceived(context.Background(), encode(t, event)), "circuit breaker is open")
	})
}
