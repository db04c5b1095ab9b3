package service

import (
	"context"
	"fmt"
	"strings"

	"hostel/infras/otel"
	"hostel/infras/postgres"
	bedModel "hostel/internal/domains/bed/model"
	bedRepo "hostel/internal/domains/bed/repository"
	"hostel/internal/domains/guest/model"
	"hostel/internal/domains/guest/model/dto"
	"hostel/internal/domains/guest/repository"
	roomModel "hostel/internal/domains/room/model"
	roomRepo "hostel/internal/domains/room/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/sequence"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (dto.GuestResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGuestsResponse, error)
	Get(ctx context.Context, id string) (dto.GuestResponse, error)
	GetByEmail(ctx context.Context, email string) (dto.GuestResponse, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Guest
	roomRepo   roomRepo.Room
	bedRepo    bedRepo.Bed
	transactor postgres.Transactor
	sequence   sequence.Generator
	otel       otel.Otel
}

func New(
	repo repository.Guest,
	roomRepo roomRepo.Room,
	bedRepo bedRepo.Bed,
	transactor postgres.Transactor,
	sequence sequence.Generator,
	otel otel.Otel,
) Guest {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		bedRepo:    bedRepo,
		transactor: transactor,
		sequence:   sequence,
		otel:       otel,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return shared.FilterByID(strings.ToLower(email), model.FieldEmail, model.TableName)
}

// Create registers a guest and assigns the first bed of the requested room that no other
// guest occupies.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var guest model.Guest

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		taken, err := s.repo.ExistTx(ctx, tx, emailFilter(req.Email))
		if err != nil {
			return fmt.Errorf("failed to check guest email: %w", err)
		}

		if taken {
			return failure.Conflict("email already registered: " + req.Email)
		}

		room, bed, err := s.firstFreeBed(ctx, tx, req.RoomNumber)
		if err != nil {
			return err
		}

		id, err := s.sequence.Next(ctx, tx, model.Sequence)
		if err != nil {
			return fmt.Errorf("failed to generate guest id: %w", err)
		}

		guest = req.ToModel(id, user)
		guest.Assign(room.ID, room.RoomNumber, bed.ID, bed.BedNumber)

		return s.repo.InsertTx(ctx, tx, guest)
	})
	if err != nil {
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to create guest")

		return res, err
	}

	res.FromModel(guest)

	return res, nil
}

// firstFreeBed locks the room and returns its lowest-numbered bed without a guest.
func (s *serviceImpl) firstFreeBed(ctx context.Context, tx *sqlx.Tx, roomNumber string) (roomModel.Room, bedModel.Bed, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(roomNumber, roomModel.FieldRoomNumber, roomModel.TableName))
	if err != nil {
		return room, bedModel.Bed{}, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, bedModel.Bed{}, failure.NotFound("room number not found: " + roomNumber)
	}

	beds, err := s.bedRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bedModel.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    room.ID,
				Table:    bedModel.TableName,
			},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    model.FreeBedFilter,
			},
		},
	})
	if err != nil {
		return room, bedModel.Bed{}, fmt.Errorf("failed to get free beds: %w", err)
	}

	if len(beds) == 0 {
		return room, bedModel.Bed{}, failure.Conflict("no available beds in room: " + roomNumber)
	}

	bedModel.SortByNumber(beds)

	return room, beds[0], nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count guests")

		return res, fmt.Errorf("failed to count guests: %w", err)
	}

	guests, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return res, fmt.Errorf("failed to get guests: %w", err)
	}

	res.FromModels(guests, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetByEmail(ctx context.Context, email string) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.GetByEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.get(ctx, emailFilter(email))
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (res dto.GuestResponse, err error) {
	guest, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return res, failure.NotFound("guest not found") // nolint:wrapcheck
	}

	res.FromModel(guest)

	return res, nil
}

// Update changes personal fields. A room number different from the current one moves the
// guest to the first free bed of that room.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	req.Email = strings.ToLower(req.Email)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		guest, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock guest: %w", err)
		}

		if guest.ID == constant.Empty {
			return failure.NotFound("guest not found")
		}

		if req.Email != constant.Empty && req.Email != guest.Email {
			taken, err := s.repo.ExistTx(ctx, tx, emailFilter(req.Email))
			if err != nil {
				return fmt.Errorf("failed to check guest email: %w", err)
			}

			if taken {
				return failure.Conflict("email already registered: " + req.Email)
			}
		}

		fields := shared.TransformFields(req, user)

		if req.RoomNumber != constant.Empty && (guest.RoomNumber == nil || *guest.RoomNumber != req.RoomNumber) {
			room, bed, err := s.firstFreeBed(ctx, tx, req.RoomNumber)
			if err != nil {
				return err
			}

			fields[model.FieldRoomID] = room.ID
			fields[model.FieldBedID] = bed.ID
		}

		return s.repo.UpdateTx(ctx, tx, fields, filter)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update guest")

		return err
	}

	return nil
}

// Delete removes a guest. Guests with bookings are kept and reported as a conflict.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Guest.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	guest, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return failure.NotFound("guest not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete guest")

		return fmt.Errorf("failed to delete guest: %w", err)
	}

	return nil
}
