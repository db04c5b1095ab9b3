package service

import (
	"context"
	"fmt"

	"hostel/infras/otel"
	"hostel/internal/domains/notification/model"
	"hostel/internal/domains/notification/model/dto"
	"hostel/internal/domains/notification/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"

	"github.com/rs/zerolog/log"
)

type Notification interface {
	GetAll(ctx context.Context, req gDto.QueryParams, unread bool) (dto.GetNotificationsResponse, error)
	MarkAsRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Notification
	otel otel.Otel
}

func New(repo repository.Notification, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// GetAll lists notifications newest first, optionally only the unread ones.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, unread bool) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + model.FieldCreatedAt
		req.SortDir = gDto.SortDirDesc
	}

	filter := dto.UnreadFilter(unread)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	notifications, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(notifications, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) MarkAsRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.MarkAsRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, map[string]any{model.FieldIsRead: true}, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to mark notification as read")

		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete notification")

		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check notification")

		return fmt.Errorf("failed to check notification: %w", err)
	}

	if !exist {
		return failure.NotFound("notification not found")
	}

	return nil
}
