package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/config"
	"hostel/infras/kafka"
	kafkaMocks "hostel/infras/kafka/mocks"
	"hostel/infras/otel/mocks"
	pgMocks "hostel/infras/postgres/mocks"
	contactMocks "hostel/internal/domains/contact/mocks"
	"hostel/internal/domains/contact/model"
	"hostel/internal/domains/contact/model/dto"
	"hostel/internal/domains/contact/service"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	seqMocks "hostel/shared/sequence/mocks"
)

type fixture struct {
	repo     *contactMocks.MockContactMessage
	sequence *seqMocks.MockGenerator
	kafka    *kafkaMocks.MockClient
	svc      service.ContactMessage
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	transactor := pgMocks.NewMockTransactor(ctrl)
	transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Kafka.Topics.ContactReceived = "contact.received"

	f := fixture{
		repo:     contactMocks.NewMockContactMessage(ctrl),
		sequence: seqMocks.NewMockGenerator(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.repo, transactor, f.sequence, f.kafka, cfg, mocks.NewOtel())

	return f
}

func TestContactService_Submit(t *testing.T) {
	req := dto.SubmitContactRequest{Name: " Grace Hopper ", Email: "Grace@Example.com", Message: "Is breakfast included?"}

	t.Run("stores and publishes", func(t *testing.T) {
		f := newFixture(t)

		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), model.Sequence).Return("M4", nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().
			SendMessages(gomock.Any(), "contact.received", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "M4", messages[0].Key)

				event, ok := messages[0].Value.(model.ReceivedEvent)
				require.True(t, ok)
				assert.Equal(t, "Grace Hopper", event.Name)

				return nil
			})

		res, err := f.svc.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "M4", res.ID)
		assert.Equal(t, "grace@example.com", res.Email)
		assert.False(t, res.IsRead)
	})

	t.Run("publish failure keeps the message", func(t *testing.T) {
		f := newFixture(t)

		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), model.Sequence).Return("M5", nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		res, err := f.svc.Submit(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "M5", res.ID)
	})

	t.Run("insert failure skips publishing", func(t *testing.T) {
		f := newFixture(t)

		f.sequence.EXPECT().Next(gomock.Any(), gomock.Any(), model.Sequence).Return("M6", nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := f.svc.Submit(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestContactService_MarkAsRead(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := f.svc.MarkAsRead(context.Background(), "M1")

	assert.True(t, failure.Is(err, http.StatusNotFound))
}

func TestContactService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ContactMessage{{ID: "M2"}, {ID: "M1"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, true)

	require.NoError(t, err)
	assert.Len(t, res.Messages, 2)
}
