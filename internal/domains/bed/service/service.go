package service

import (
	"context"
	"fmt"

	"hostel/config"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/internal/domains/bed/model"
	"hostel/internal/domains/bed/model/dto"
	"hostel/internal/domains/bed/repository"
	roomModel "hostel/internal/domains/room/model"
	roomRepo "hostel/internal/domains/room/repository"
	"hostel/shared"
	"hostel/shared/cache"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	gModel "hostel/shared/model"
	"hostel/shared/sequence"
	"hostel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBed    = "bed:get"
	cacheGetAllBed = "bed:gets"
)

type Bed interface {
	Add(ctx context.Context, roomID string) (dto.BedResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBedsResponse, error)
	Get(ctx context.Context, id string) (dto.BedResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Bed
	roomRepo   roomRepo.Room
	transactor postgres.Transactor
	sequence   sequence.Generator
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Bed,
	roomRepo roomRepo.Room,
	transactor postgres.Transactor,
	sequence sequence.Generator,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Bed {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		transactor: transactor,
		sequence:   sequence,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Add appends a bed to the room. The room row stays locked while the bed count is compared
// with its capacity, so two concurrent adds cannot both take the last slot.
func (s *serviceImpl) Add(ctx context.Context, roomID string) (res dto.BedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bed.Add")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var bed model.Bed

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		count, err := s.repo.CountTx(ctx, tx, shared.FilterByID(room.ID, model.FieldRoomID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to count beds: %w", err)
		}

		if count >= room.Capacity {
			return failure.Conflict(fmt.Sprintf("room %s is at capacity (%d beds)", room.RoomNumber, room.Capacity))
		}

		bedID, err := s.sequence.Next(ctx, tx, model.Sequence)
		if err != nil {
			return fmt.Errorf("failed to generate bed id: %w", err)
		}

		bedNumber, err := s.sequence.Next(ctx, tx, model.NumberSequence)
		if err != nil {
			return fmt.Errorf("failed to generate bed number: %w", err)
		}

		bed = model.Bed{
			ID:         bedID,
			BedNumber:  bedNumber,
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		return s.repo.InsertTx(ctx, tx, bed)
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to add bed")

		return res, err
	}

	res.FromModel(bed)

	go s.invalidate(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, model.EntityName)
	shared.InvalidateCaches(ctx, s.cache, roomModel.CachePrefix)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBedsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bed.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBed, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for beds")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count beds")

		return res, fmt.Errorf("failed to count beds: %w", err)
	}

	beds, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get beds")

		return res, fmt.Errorf("failed to get beds: %w", err)
	}

	if req.SortBy == constant.Empty {
		model.SortByNumber(beds)
	}

	res.FromModels(beds, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save beds to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bed.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBed, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	bed, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bed")

		return res, fmt.Errorf("failed to get bed: %w", err)
	}

	if bed.ID == constant.Empty {
		return res, failure.NotFound("bed not found") // nolint:wrapcheck
	}

	res.FromModel(bed)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bed to cache")
		}
	}()

	return res, nil
}

// Delete removes a single bed. A bed with bookings is kept and reported as a conflict.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bed.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	bed, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bed")

		return fmt.Errorf("failed to get bed: %w", err)
	}

	if bed.ID == constant.Empty {
		return failure.NotFound("bed not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete bed")

		return fmt.Errorf("failed to delete bed: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx))

	return nil
}
