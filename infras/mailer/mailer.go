package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hostel/config"
	"hostel/infras/otel"
	"hostel/shared/constant"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// Mail is a plain text message with an optional html alternative.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Mailer {
	smtp := cfg.External.SMTP

	var dialer *gomail.Dialer
	if smtp.Host != constant.Empty {
		dialer = gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	} else {
		log.Warn().Msg("SMTP host is empty, emails will not be sent")
	}

	return &smtpMailer{
		dialer: dialer,
		from:   smtp.From,
		otel:   otel,
	}
}

func (m *smtpMailer) Send(ctx context.Context, mail Mail) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if m.dialer == nil {
		return ErrNotConfigured
	}

	message := Build(m.from, mail)

	if err = m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", mail.To, err)
	}

	log.Info().Str("to", mail.To).Str("subject", mail.Subject).Msg("mail sent")

	return nil
}

// Build renders mail into a gomail message from the given sender.
func Build(from string, mail Mail) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", from)
	message.SetHeader("To", mail.To)
	message.SetHeader("Subject", mail.Subject)
	message.SetBody("text/plain", mail.Text)

	if mail.HTML != constant.Empty {
		message.AddAlternative("text/html", mail.HTML)
	}

	return message
}
