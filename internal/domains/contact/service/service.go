package service

import (
	"context"
	"fmt"

	"hostel/config"
	"hostel/infras/kafka"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/internal/domains/contact/model"
	"hostel/internal/domains/contact/model/dto"
	"hostel/internal/domains/contact/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/sequence"
	"hostel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type ContactMessage interface {
	Submit(ctx context.Context, req dto.SubmitContactRequest) (dto.ContactMessageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, unread bool) (dto.GetContactMessagesResponse, error)
	MarkAsRead(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.ContactMessage
	transactor postgres.Transactor
	sequence   sequence.Generator
	kafka      kafka.Client
	config     *config.Config
	otel       otel.Otel
}

func New(
	repo repository.ContactMessage,
	transactor postgres.Transactor,
	sequence sequence.Generator,
	kafka kafka.Client,
	config *config.Config,
	otel otel.Otel,
) ContactMessage {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		sequence:   sequence,
		kafka:      kafka,
		config:     config,
		otel:       otel,
	}
}

// Submit stores the message and then announces it. A failed announcement is logged and the
// message stays stored.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitContactRequest) (res dto.ContactMessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactMessage.Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var message model.ContactMessage

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		id, err := s.sequence.Next(ctx, tx, model.Sequence)
		if err != nil {
			return fmt.Errorf("failed to generate contact message id: %w", err)
		}

		message = req.ToModel(id, timezone.Now())

		return s.repo.InsertTx(ctx, tx, message)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to submit contact message")

		return res, err
	}

	event := kafka.Message{
		Key: message.ID,
		Value: model.ReceivedEvent{
			ID:      message.ID,
			Name:    message.Name,
			Email:   message.Email,
			Message: message.Message,
		},
	}

	if pubErr := s.kafka.SendMessages(ctx, s.config.Kafka.Topics.ContactReceived, event); pubErr != nil {
		log.Warn().Err(pubErr).Str("id", message.ID).Msg("failed to publish contact message event")
	}

	res.FromModel(message)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, unread bool) (res dto.GetContactMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactMessage.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + model.FieldSentAt
		req.SortDir = gDto.SortDirDesc
	}

	filter := dto.UnreadFilter(unread)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contact messages")

		return res, fmt.Errorf("failed to count contact messages: %w", err)
	}

	messages, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact messages")

		return res, fmt.Errorf("failed to get contact messages: %w", err)
	}

	res.FromModels(messages, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) MarkAsRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContactMessage.MarkAsRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check contact message")

		return fmt.Errorf("failed to check contact message: %w", err)
	}

	if !exist {
		return failure.NotFound("contact message not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{model.FieldIsRead: true}, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to mark contact message as read")

		return fmt.Errorf("failed to mark contact message as read: %w", err)
	}

	return nil
}
