package service

import (
	"context"
	"fmt"
	"strings"

	"hostel/config"
	"hostel/infras/kafka"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	bedModel "hostel/internal/domains/bed/model"
	bedRepo "hostel/internal/domains/bed/repository"
	bookingModel "hostel/internal/domains/booking/model"
	bookingRepo "hostel/internal/domains/booking/repository"
	guestModel "hostel/internal/domains/guest/model"
	guestRepo "hostel/internal/domains/guest/repository"
	notificationModel "hostel/internal/domains/notification/model"
	notificationRepo "hostel/internal/domains/notification/repository"
	paymentModel "hostel/internal/domains/payment/model"
	paymentRepo "hostel/internal/domains/payment/repository"
	"hostel/internal/domains/reservation/availability"
	"hostel/internal/domains/reservation/model"
	"hostel/internal/domains/reservation/model/dto"
	roomModel "hostel/internal/domains/room/model"
	roomRepo "hostel/internal/domains/room/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	gModel "hostel/shared/model"
	"hostel/shared/sequence"
	"hostel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Reservation owns every booking write: creation with its guest, payment and notification,
// and the lifecycle transitions after it.
type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailableRoomsResponse, error)
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	roomRepo         roomRepo.Room
	bedRepo          bedRepo.Bed
	guestRepo        guestRepo.Guest
	bookingRepo      bookingRepo.Booking
	paymentRepo      paymentRepo.Payment
	notificationRepo notificationRepo.Notification
	transactor       postgres.Transactor
	sequence         sequence.Generator
	kafka            kafka.Client
	config           *config.Config
	otel             otel.Otel
}

func New(
	roomRepo roomRepo.Room,
	bedRepo bedRepo.Bed,
	guestRepo guestRepo.Guest,
	bookingRepo bookingRepo.Booking,
	paymentRepo paymentRepo.Payment,
	notificationRepo notificationRepo.Notification,
	transactor postgres.Transactor,
	sequence sequence.Generator,
	kafka kafka.Client,
	config *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		roomRepo:         roomRepo,
		bedRepo:          bedRepo,
		guestRepo:        guestRepo,
		bookingRepo:      bookingRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		transactor:       transactor,
		sequence:         sequence,
		kafka:            kafka,
		config:           config,
		otel:             otel,
	}
}

func actor(ctx context.Context) string {
	if user, _ := ctx.Value(constant.ContextKeyUserID).(string); user != constant.Empty {
		return user
	}

	return constant.ContextGuest
}

func (s *serviceImpl) paymentType(requested string) (paymentModel.Type, error) {
	if requested != constant.Empty {
		return paymentModel.ParseType(requested)
	}

	paymentType, err := paymentModel.ParseType(s.config.Reservation.DefaultPaymentType)
	if err != nil {
		return paymentModel.TypeCreditCard, nil //nolint:nilerr
	}

	return paymentType, nil
}

// Create books the first free bed of the requested room. Everything it writes commits
// together; the confirmation event is sent only after the commit.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	interval, err := availability.ParseInterval(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	if !req.TotalPrice.IsPositive() {
		return res, failure.BadRequestFromString("total_price must be greater than zero")
	}

	paymentType, err := s.paymentType(req.PaymentType)
	if err != nil {
		return res, err
	}

	user := actor(ctx)

	var guest guestModel.Guest

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.RoomNumber, roomModel.FieldRoomNumber, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room number not found: " + req.RoomNumber)
		}

		bed, err := s.pickBed(ctx, tx, room, interval)
		if err != nil {
			return err
		}

		guest, err = s.resolveGuest(ctx, tx, req, room, bed, user)
		if err != nil {
			return err
		}

		now := timezone.Now()
		metadata := gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: user, ModifiedBy: user}

		bookingID, err := s.sequence.Next(ctx, tx, bookingModel.Sequence)
		if err != nil {
			return fmt.Errorf("failed to generate booking id: %w", err)
		}

		booking := bookingModel.Booking{
			ID:           bookingID,
			RoomID:       room.ID,
			BedID:        bed.ID,
			GuestID:      guest.ID,
			CheckInDate:  interval.CheckIn,
			CheckOutDate: interval.CheckOut,
			Status:       bookingModel.StatusBooked,
			TotalPrice:   req.TotalPrice,
			Metadata:     metadata,
		}

		if err = s.bookingRepo.InsertTx(ctx, tx, booking); err != nil {
			return err
		}

		paymentID, err := s.sequence.Next(ctx, tx, paymentModel.Sequence)
		if err != nil {
			return fmt.Errorf("failed to generate payment id: %w", err)
		}

		payment := paymentModel.Payment{
			ID:          paymentID,
			BookingID:   bookingID,
			PaymentType: paymentType,
			Amount:      req.TotalPrice,
			PaymentDate: now,
		}

		if err = s.paymentRepo.InsertTx(ctx, tx, payment); err != nil {
			return err
		}

		notificationID, err := s.sequence.Next(ctx, tx, notificationModel.Sequence)
		if err != nil {
			return fmt.Errorf("failed to generate notification id: %w", err)
		}

		notification := notificationModel.Notification{
			ID:            notificationID,
			BookingID:     bookingID,
			Title:         notificationModel.TitleNewBooking,
			Message:       notificationModel.MessageNewBooking,
			GuestFullName: guest.FullName(),
			RoomNumber:    room.RoomNumber,
			BedNumber:     bed.BedNumber,
			CheckInDate:   interval.CheckIn,
			CheckOutDate:  interval.CheckOut,
			TotalPrice:    req.TotalPrice,
			CreatedAt:     now,
		}

		if err = s.notificationRepo.InsertTx(ctx, tx, notification); err != nil {
			return err
		}

		res = dto.ReservationResponse{
			BookingID:     bookingID,
			PaymentID:     paymentID,
			GuestID:       guest.ID,
			GuestFullName: guest.FullName(),
			RoomNumber:    room.RoomNumber,
			BedNumber:     bed.BedNumber,
			CheckInDate:   interval.CheckIn.Format(constant.DateOnlyFormat),
			CheckOutDate:  interval.CheckOut.Format(constant.DateOnlyFormat),
			TotalPrice:    req.TotalPrice,
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to create reservation")

		return dto.ReservationResponse{}, err
	}

	log.Info().Str("booking_id", res.BookingID).Str("bed_number", res.BedNumber).Msg("reservation created")

	s.publishConfirmed(ctx, res.ToEvent(guest.Email, guest.Phone))

	return res, nil
}

// pickBed returns the lowest-numbered bed of the locked room that is free over interval.
func (s *serviceImpl) pickBed(ctx context.Context, tx *sqlx.Tx, room roomModel.Room, interval availability.Interval) (bedModel.Bed, error) {
	beds, err := s.bedRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, shared.FilterByID(room.ID, bedModel.FieldRoomID, bedModel.TableName))
	if err != nil {
		return bedModel.Bed{}, fmt.Errorf("failed to get beds: %w", err)
	}

	bedModel.SortByNumber(beds)

	bookings, err := s.bookingRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, bookingModel.ActiveOverlap(room.ID, interval.CheckIn, interval.CheckOut))
	if err != nil {
		return bedModel.Bed{}, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	bed, ok := availability.NewIndex(bookings).FirstFree(beds, interval)
	if !ok {
		return bedModel.Bed{}, failure.Conflict("no available beds in room: " + room.RoomNumber)
	}

	return bed, nil
}

// resolveGuest reuses the guest registered under the same email, refreshing the personal
// fields and the assignment. Unknown emails get a new guest.
func (s *serviceImpl) resolveGuest(
	ctx context.Context,
	tx *sqlx.Tx,
	req dto.CreateReservationRequest,
	room roomModel.Room,
	bed bedModel.Bed,
	user string,
) (guestModel.Guest, error) {
	email := strings.ToLower(req.Email)
	dateOfBirth, _ := timezone.ParseDate(req.DateOfBirth)

	guest, err := s.guestRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(email, guestModel.FieldEmail, guestModel.TableName))
	if err != nil {
		return guest, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID != constant.Empty {
		fields := map[string]any{
			guestModel.FieldFirstName:   req.FirstName,
			guestModel.FieldLastName:    req.LastName,
			guestModel.FieldPhone:       req.Phone,
			guestModel.FieldDateOfBirth: dateOfBirth,
			guestModel.FieldRoomID:      room.ID,
			guestModel.FieldBedID:       bed.ID,
			constant.FieldModifiedAt:    timezone.Now(),
			constant.FieldModifiedBy:    user,
		}

		if err = s.guestRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(guest.ID, guestModel.FieldID, guestModel.TableName)); err != nil {
			return guest, err
		}

		guest.FirstName, guest.LastName, guest.Phone, guest.DateOfBirth = req.FirstName, req.LastName, req.Phone, dateOfBirth
		guest.Assign(room.ID, room.RoomNumber, bed.ID, bed.BedNumber)

		return guest, nil
	}

	id, err := s.sequence.Next(ctx, tx, guestModel.Sequence)
	if err != nil {
		return guest, fmt.Errorf("failed to generate guest id: %w", err)
	}

	now := timezone.Now()
	guest = guestModel.Guest{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Metadata:    gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: user, ModifiedBy: user},
	}
	guest.Assign(room.ID, room.RoomNumber, bed.ID, bed.BedNumber)

	if err = s.guestRepo.InsertTx(ctx, tx, guest); err != nil {
		return guest, err
	}

	return guest, nil
}

func (s *serviceImpl) publishConfirmed(ctx context.Context, event model.BookingConfirmedEvent) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Reservation.publishConfirmed")
	defer scope.End()

	topic := s.config.Kafka.Topics.BookingConfirmed

	if err := s.kafka.SendMessages(ctx, topic, kafka.Message{Key: event.BookingID, Value: event}); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("topic", topic).Str("booking_id", event.BookingID).Msg("failed to publish booking confirmation")
	}
}

// AvailableRooms lists the numbers of rooms with at least req.Guests beds free over the whole
// interval. It reads every room and bed once plus the Booked bookings that intersect the interval.
func (s *serviceImpl) AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.AvailableRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = dto.AvailableRoomsResponse{
		CheckInDate:  req.Interval.CheckIn.Format(constant.DateOnlyFormat),
		CheckOutDate: req.Interval.CheckOut.Format(constant.DateOnlyFormat),
		Guests:       req.Guests,
		RoomNumbers:  []string{},
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  roomModel.TableName + "." + roomModel.FieldRoomNumber,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	beds, err := s.bedRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get beds")

		return res, fmt.Errorf("failed to get beds: %w", err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, bookingModel.ActiveOverlap(constant.Empty, req.Interval.CheckIn, req.Interval.CheckOut))
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	bedsByRoom := map[string][]bedModel.Bed{}
	for _, bed := range beds {
		bedsByRoom[bed.RoomID] = append(bedsByRoom[bed.RoomID], bed)
	}

	index := availability.NewIndex(bookings)

	for _, room := range rooms {
		if len(index.FreeBeds(bedsByRoom[room.ID], req.Interval)) >= req.Guests {
			res.RoomNumbers = append(res.RoomNumbers, room.RoomNumber)
		}
	}

	return res, nil
}

// Cancel moves a Booked booking to Cancelled and frees the guest's bed. Cancelling twice
// succeeds without changes.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.transition(ctx, id, bookingModel.StatusCancelled)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to cancel booking")
	}

	return err
}

// Complete moves a Booked booking to Completed and frees the guest's bed.
func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.transition(ctx, id, bookingModel.StatusCompleted)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to complete booking")
	}

	return err
}

func (s *serviceImpl) transition(ctx context.Context, id string, target bookingModel.Status) error {
	user := actor(ctx)
	filter := shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName)

	return s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.bookingRepo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found")
		}

		switch {
		case booking.Status == target && target == bookingModel.StatusCancelled:
			return nil
		case booking.Status != bookingModel.StatusBooked:
			return failure.InvalidState(fmt.Sprintf("booking %s is %s and cannot become %s", id, booking.Status, target))
		}

		fields := map[string]any{
			bookingModel.FieldStatus: target,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err = s.bookingRepo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err
		}

		return s.releaseGuest(ctx, tx, booking, user)
	})
}

// releaseGuest clears the guest's assignment when it still points at the booking's bed.
func (s *serviceImpl) releaseGuest(ctx context.Context, tx *sqlx.Tx, booking bookingModel.Booking, user string) error {
	fields := map[string]any{
		guestModel.FieldRoomID:   nil,
		guestModel.FieldBedID:    nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: guestModel.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.GuestID, Table: guestModel.TableName},
			gDto.Filter{Field: guestModel.FieldBedID, Operator: gDto.FilterOperatorEq, Value: booking.BedID, Table: guestModel.TableName},
		},
	}

	if err := s.guestRepo.UpdateTx(ctx, tx, fields, filter); err != nil {
		return fmt.Errorf("failed to release guest assignment: %w", err)
	}

	return nil
}

// Delete removes a booking in any status. Its payment goes with it and its notification stays.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reservation.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := actor(ctx)
	filter := shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName)

	err = s.transactor.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		booking, err := s.bookingRepo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found")
		}

		if err = s.bookingRepo.DeleteTx(ctx, tx, filter); err != nil {
			return err
		}

		if booking.Status != bookingModel.StatusBooked {
			return nil
		}

		return s.releaseGuest(ctx, tx, booking, user)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return err
	}

	return nil
}
