package mailer_test

import (
	"bytes"
	"context"
	"hostel/config"
	"hostel/infras/mailer"
	"hostel/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	message := mailer.Build("desk@innberlin.example", mailer.Mail{
		To:      "ana@example.com",
		Subject: "Booking Confirmation - Inn Berlin Hostel",
		Text:    "Your booking BK1 is confirmed.",
	})

	assert.Equal(t, []string{"desk@innberlin.example"}, message.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, message.GetHeader("To"))
	assert.Equal(t, []string{"Booking Confirmation - Inn Berlin Hostel"}, message.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := message.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Your booking BK1 is confirmed.")
}

func TestSendWithoutSMTP(t *testing.T) {
	m := mailer.New(&config.Config{}, mocks.NewOtel())

	err := m.Send(context.Background(), mailer.Mail{To: "ana@example.com"})
	assert.ErrorIs(t, err, mailer.ErrNotConfigured)
}
