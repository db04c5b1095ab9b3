package kafka_test

import (
	"hostel/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingConfirmed struct {
	BookingID string  `json:"booking_id"`
	Price     float64 `json:"price"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{
		Key:   "BK1",
		Value: bookingConfirmed{BookingID: "BK1", Price: 60},
	}

	encoded, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("BK1"), encoded.Key)
	assert.JSONEq(t, `{"booking_id":"BK1","price":60}`, string(encoded.Value))

	decoded, err := kafka.Decode[bookingConfirmed](encoded)
	require.NoError(t, err)
	assert.Equal(t, bookingConfirmed{BookingID: "BK1", Price: 60}, decoded)
}

func TestDecodeInvalidPayload(t *testing.T) {
	_, err := kafka.Decode[bookingConfirmed](kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestToKafkaMessageUnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "N1", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}
