package booking

import (
	"net/http"

	"hostel/infras/otel"
	"hostel/internal/domains/booking/model"
	"hostel/internal/domains/booking/model/dto"
	"hostel/internal/domains/booking/service"
	paymentService "hostel/internal/domains/payment/service"
	reservationDto "hostel/internal/domains/reservation/model/dto"
	reservationService "hostel/internal/domains/reservation/service"
	"hostel/internal/jobs/latest"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/validator"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service     service.Booking
	reservation reservationService.Reservation
	payments    paymentService.Payment
	latest      *latest.Tracker
	otel        otel.Otel
}

func New(
	service service.Booking,
	reservation reservationService.Reservation,
	payments paymentService.Payment,
	latest *latest.Tracker,
	otel otel.Otel,
) Handler {
	return Handler{
		service:     service,
		reservation: reservation,
		payments:    payments,
		latest:      latest,
		otel:        otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/latest", handler.GetLatestBooking)
		routerGroup.Get("/status-counts", handler.GetStatusCounts)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/payment", handler.GetBookingPayment)
		routerGroup.Patch("/{id}/cancel", handler.CancelBooking)
		routerGroup.Patch("/{id}/complete", handler.CompleteBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking books a bed on behalf of a guest. Unlike the public endpoint it accepts a payment type.
// @Summary Create a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body reservationDto.CreateReservationRequest true "Create Booking Request"
// @Success 201 {object} reservationDto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := reservationDto.CreateReservationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.reservation.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + res.BookingID + " created by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookings searches bookings.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param status query string false "Booked, Cancelled or Completed"
// @Param check_in_from query string false "Earliest check-in date (YYYY-MM-DD)"
// @Param check_in_to query string false "Latest check-in date (YYYY-MM-DD)"
// @Param first_name query string false "Guest first name"
// @Param last_name query string false "Guest last name"
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Param sort_by query string false "check_in_date, check_out_date, total_price, status or created_at"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName,
		model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldTotalPrice, model.FieldStatus, model.FieldCreatedAt)

	filter := dto.BookingFilter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid booking filter")

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetLatestBooking returns the newest booking seen by the background poller.
// @Summary Get the latest booking
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/latest [get]
// @Security BearerAuth
func (handler *Handler) GetLatestBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLatestBooking")
	defer scope.End()

	if current, ok := handler.latest.Get(); ok {
		res := dto.BookingResponse{}
		res.FromModel(current)

		response.WithJSON(w, http.StatusOK, res)

		return
	}

	// nothing polled yet
	res, err := handler.service.Latest(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get latest booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetStatusCounts counts bookings per status.
// @Summary Count bookings by status
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.StatusCountsResponse
// @Failure 500 {object} response.Error
// @Router /v1/bookings/status-counts [get]
// @Security BearerAuth
func (handler *Handler) GetStatusCounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatusCounts")
	defer scope.End()

	counts, err := handler.service.StatusCounts(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count bookings by status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, counts)
}

// GetBookingByID retrieves a booking with its room, bed and guest.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingPayment retrieves the payment recorded with a booking.
// @Summary Get the payment of a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} object "Payment"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/payment [get]
// @Security BearerAuth
func (handler *Handler) GetBookingPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingPayment")
	defer scope.End()

	payment, err := handler.payments.GetByBooking(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// CancelBooking cancels a Booked booking and frees its bed.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error "Booking is completed"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	if err := handler.reservation.Cancel(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// CompleteBooking marks a Booked booking as checked out.
// @Summary Complete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking completed successfully"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error "Booking is not booked"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/complete [patch]
// @Security BearerAuth
func (handler *Handler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteBooking")
	defer scope.End()

	if err := handler.reservation.Complete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking completed successfully")
}

// DeleteBooking deletes a booking and its payment.
// @Summary Delete a booking @SuperAdmin
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.reservation.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}
