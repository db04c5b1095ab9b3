// Package notifier turns reservation and contact events into email, SMS and archived
// receipts. Delivery failures are logged and never reach the event producer.
package notifier

import (
	"context"
	"fmt"
	"sync"

	"hostel/config"
	"hostel/infras/kafka"
	"hostel/infras/mailer"
	"hostel/infras/otel"
	"hostel/infras/s3"
	"hostel/infras/sms"
	contactModel "hostel/internal/domains/contact/model"
	reservationModel "hostel/internal/domains/reservation/model"
	"hostel/shared/constant"
	"hostel/shared/guard"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	receiptDirectory   = "receipts"
	receiptContentType = "text/plain; charset=utf-8"
)

type Dispatcher struct {
	config  *config.Config
	mailer  mailer.Mailer
	sms     sms.SMS
	storage s3.S3
	otel    otel.Otel

	mailGuard    *guard.Guard
	smsGuard     *guard.Guard
	archiveGuard *guard.Guard
}

func New(cfg *config.Config, mailer mailer.Mailer, sms sms.SMS, storage s3.S3, otel otel.Otel) *Dispatcher {
	settings := guard.SettingsFromConfig(cfg)

	return &Dispatcher{
		config:       cfg,
		mailer:       mailer,
		sms:          sms,
		storage:      storage,
		otel:         otel,
		mailGuard:    guard.New("email", settings),
		smsGuard:     guard.New("sms", settings),
		archiveGuard: guard.New("receipt-archive", settings),
	}
}

// Run consumes both topics until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, client kafka.Client) {
	var wg sync.WaitGroup

	consumers := map[string]kafka.Handler{
		d.config.Kafka.Topics.BookingConfirmed: d.HandleBookingConfirmed,
		d.config.Kafka.Topics.ContactReceived:  d.HandleContactReceived,
	}

	for topic, handler := range consumers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			log.Info().Str("topic", topic).Msg("notification consumer started")
			client.Consume(ctx, d.config.Kafka.ConsumerGroup, topic, handler)
		}()
	}

	wg.Wait()
}

// HandleBookingConfirmed emails and texts the guest and archives the receipt. Each channel is
// attempted independently; the first failure is returned for logging.
func (d *Dispatcher) HandleBookingConfirmed(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notifier.HandleBookingConfirmed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[reservationModel.BookingConfirmedEvent](message)
	if err != nil {
		return err
	}

	if !d.config.Notification.Enable {
		log.Debug().Str("booking_id", event.BookingID).Msg("notifications disabled, skipping confirmation")

		return nil
	}

	hostel := d.config.Reservation.HostelName

	var errs []error

	if event.GuestEmail != constant.Empty {
		mail := ConfirmationMail(event, hostel)

		if err := d.mailGuard.Do(ctx, func(ctx context.Context) error { return d.mailer.Send(ctx, mail) }); err != nil {
			log.Warn().Err(err).Str("booking_id", event.BookingID).Msg("failed to send confirmation email")
			errs = append(errs, err)
		}
	}

	if event.GuestPhone != constant.Empty {
		body := ConfirmationSMS(event)

		if err := d.smsGuard.Do(ctx, func(ctx context.Context) error { return d.sms.Send(ctx, event.GuestPhone, body) }); err != nil {
			log.Warn().Err(err).Str("booking_id", event.BookingID).Msg("failed to send confirmation sms")
			errs = append(errs, err)
		}
	}

	if d.config.Notification.ReceiptArchive {
		receipt := []byte(ConfirmationMail(event, hostel).Text)

		err := d.archiveGuard.Do(ctx, func(ctx context.Context) error {
			url, err := d.storage.Upload(ctx, receiptDirectory, event.BookingID+".txt", receiptContentType, receipt)
			if err == nil {
				log.Info().Str("booking_id", event.BookingID).Str("url", url).Msg("receipt archived")
			}

			return err
		})
		if err != nil {
			log.Warn().Err(err).Str("booking_id", event.BookingID).Msg("failed to archive receipt")
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("booking %s: %d of the confirmation channels failed: %w", event.BookingID, len(errs), errs[0])
	}

	return nil
}

// HandleContactReceived alerts the hostel phone about a new contact message.
func (d *Dispatcher) HandleContactReceived(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notifier.HandleContactReceived")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[contactModel.ReceivedEvent](message)
	if err != nil {
		return err
	}

	phone := d.config.Notification.ContactPhone

	if !d.config.Notification.Enable || phone == constant.Empty {
		log.Debug().Str("contact_id", event.ID).Msg("contact alert not configured, skipping")

		return nil
	}

	body := ContactSMS(event)

	err = d.smsGuard.Do(ctx, func(ctx context.Context) error { return d.sms.Send(ctx, phone, body) })
	if err != nil {
		log.Warn().Err(err).Str("contact_id", event.ID).Msg("failed to send contact alert")

		return fmt.Errorf("contact %s: %w", event.ID, err)
	}

	return nil
}
