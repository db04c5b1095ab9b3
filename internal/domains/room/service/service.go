package service

import (
	"context"
	"fmt"

	"hostel/config"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	bedModel "hostel/internal/domains/bed/model"
	bedRepo "hostel/internal/domains/bed/repository"
	"hostel/internal/domains/room/model"
	"hostel/internal/domains/room/model/dto"
	"hostel/internal/domains/room/repository"
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
	cacheGetRoom    = model.CachePrefix + ":get"
	cacheGetAllRoom = model.CachePrefix + ":gets"
	cacheCountRoom  = model.CachePrefix + ":count"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Room
	bedRepo    bedRepo.Bed
	transactor postgres.Transactor
	sequence   sequence.Generator
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Room,
	bedRepo bedRepo.Bed,
	transactor postgres.Transactor,
	sequence sequence.Generator,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:       repo,
		bedRepo:    bedRepo,
		transactor: transactor,
		sequence:   sequence,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func roomNumberFilter(roomNumber string) gDto.FilterGroup {
	return shared.FilterByID(roomNumber, model.FieldRoomNumber, model.TableName)
}

// Create inserts the room together with bedCount freshly numbered beds.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.BedCount > req.Capacity {
		return res, failure.Conflict(fmt.Sprintf("bed count %d exceeds room capacity %d", req.BedCount, req.Capacity))
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		room model.Room
		beds []bedModel.Bed
	)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, roomNumberFilter(req.RoomNumber))
		if err != nil {
			return fmt.Errorf("failed to check room number: %w", err)
		}

		if exist {
			return failure.Conflict("room number already exists: " + req.RoomNumber)
		}

		roomID, err := s.sequence.Next(ctx, tx, model.Sequence)
		if err != nil {
			return fmt.Errorf("failed to generate room id: %w", err)
		}

		room = req.ToModel(roomID, user)
		if err = s.repo.InsertTx(ctx, tx, room); err != nil {
			return fmt.Errorf("failed to insert room: %w", err)
		}

		beds, err = s.newBeds(ctx, tx, room, req.BedCount, user)
		if err != nil {
			return err
		}

		if err = s.bedRepo.InsertBulkTx(ctx, tx, beds); err != nil {
			return fmt.Errorf("failed to insert beds: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to create room")

		return res, err
	}

	res.FromModel(room, beds)

	go s.invalidate(context.WithoutCancel(ctx))

	return res, nil
}

// invalidate drops cached room views and the bed views that embed room data.
func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, model.CachePrefix)
	shared.InvalidateCaches(ctx, s.cache, bedModel.EntityName)
}

func (s *serviceImpl) newBeds(ctx context.Context, tx *sqlx.Tx, room model.Room, count int, user string) ([]bedModel.Bed, error) {
	beds := make([]bedModel.Bed, 0, count)

	for range count {
		bedID, err := s.sequence.Next(ctx, tx, bedModel.Sequence)
		if err != nil {
			return nil, fmt.Errorf("failed to generate bed id: %w", err)
		}

		bedNumber, err := s.sequence.Next(ctx, tx, bedModel.NumberSequence)
		if err != nil {
			return nil, fmt.Errorf("failed to generate bed number: %w", err)
		}

		beds = append(beds, bedModel.Bed{
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
		})
	}

	return beds, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bedsByRoom, err := s.bedsByRoom(ctx, rooms)
	if err != nil {
		return res, err
	}

	res.FromModels(rooms, bedsByRoom, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

// bedsByRoom loads the beds of every listed room with a single query.
func (s *serviceImpl) bedsByRoom(ctx context.Context, rooms []model.Room) (map[string][]bedModel.Bed, error) {
	grouped := make(map[string][]bedModel.Bed, len(rooms))
	if len(rooms) == 0 {
		return grouped, nil
	}

	roomIDs := make([]string, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}

	beds, err := s.bedRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bedModel.FieldRoomID,
				Operator: gDto.FilterOperatorIn,
				Value:    roomIDs,
				Table:    bedModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get beds of rooms")

		return nil, fmt.Errorf("failed to get beds of rooms: %w", err)
	}

	bedModel.SortByNumber(beds)

	for _, bed := range beds {
		grouped[bed.RoomID] = append(grouped[bed.RoomID], bed)
	}

	return grouped, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

// Get returns the room with its beds in bed-number order.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	beds, err := s.bedRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(room.ID, bedModel.FieldRoomID, bedModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get beds of room")

		return res, fmt.Errorf("failed to get beds of room: %w", err)
	}

	bedModel.SortByNumber(beds)
	res.FromModel(room, beds)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// Update renames or resizes a room. A new number must be unused and a new capacity must still
// hold the beds the room already owns.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		if req.RoomNumber != constant.Empty && req.RoomNumber != current.RoomNumber {
			taken, err := s.repo.ExistTx(ctx, tx, roomNumberFilter(req.RoomNumber))
			if err != nil {
				return fmt.Errorf("failed to check room number: %w", err)
			}

			if taken {
				return failure.Conflict("room number already exists: " + req.RoomNumber)
			}
		}

		if req.Capacity != nil {
			beds, err := s.bedRepo.CountTx(ctx, tx, shared.FilterByID(id, bedModel.FieldRoomID, bedModel.TableName))
			if err != nil {
				return fmt.Errorf("failed to count beds: %w", err)
			}

			if *req.Capacity < beds {
				return failure.Conflict(fmt.Sprintf("capacity %d is below the %d beds in room %s", *req.Capacity, beds, current.RoomNumber))
			}
		}

		return s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update room")

		return err
	}

	go s.invalidate(context.WithoutCancel(ctx))

	return nil
}

// Delete removes the room and its beds. Beds still referenced by bookings block the delete.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found")
		}

		if err = s.bedRepo.DeleteTx(ctx, tx, shared.FilterByID(id, bedModel.FieldRoomID, bedModel.TableName)); err != nil {
			return fmt.Errorf("failed to delete beds of room: %w", err)
		}

		if err = s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room")

		return err
	}

	go s.invalidate(context.WithoutCancel(ctx))

	return nil
}
