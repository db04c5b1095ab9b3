package sms_test

import (
	"context"
	"hostel/config"
	"hostel/infras/otel/mocks"
	"hostel/infras/sms"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendWithoutAccount(t *testing.T) {
	client := sms.New(&config.Config{}, mocks.NewOtel())

	err := client.Send(context.Background(), "+4915100000000", "hello")
	assert.ErrorIs(t, err, sms.ErrNotConfigured)
}

func TestSendWithoutRecipient(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Twilio.AccountSID = "AC00000000000000000000000000000000"
	cfg.External.Twilio.AuthToken = "token"

	client := sms.New(cfg, mocks.NewOtel())

	err := client.Send(context.Background(), "", "hello")
	assert.ErrorIs(t, err, sms.ErrNoRecipient)
}
