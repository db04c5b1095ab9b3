package sms

//go:generate go run go.uber.org/mock/mockgen -source=./sms.go -destination=./mocks/sms_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hostel/config"
	"hostel/infras/otel"
	"hostel/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	ErrNotConfigured = errors.New("twilio is not configured")
	ErrNoRecipient   = errors.New("sms recipient is empty")
)

type SMS interface {
	Send(ctx context.Context, to, body string) error
}

type twilioSMS struct {
	client *twilio.RestClient
	from   string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) SMS {
	creds := cfg.External.Twilio

	var client *twilio.RestClient
	if creds.AccountSID != constant.Empty {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: creds.AccountSID,
			Password: creds.AuthToken,
		})
	} else {
		log.Warn().Msg("Twilio account is empty, SMS will not be sent")
	}

	return &twilioSMS{
		client: client,
		from:   creds.From,
		otel:   otel,
	}
}

func (s *twilioSMS) Send(ctx context.Context, to, body string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelSMSScopeName, constant.OtelSMSScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.client == nil {
		return ErrNotConfigured
	}

	if to == constant.Empty {
		return ErrNoRecipient
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send sms to %s: %w", to, err)
	}

	sid := constant.Empty
	if resp.Sid != nil {
		sid = *resp.Sid
	}

	log.Info().Str("to", to).Str("sid", sid).Msg("sms sent")

	return nil
}
