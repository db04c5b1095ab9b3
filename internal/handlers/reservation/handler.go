package reservation

import (
	"net/http"

	"hostel/infras/otel"
	"hostel/internal/domains/reservation/model/dto"
	"hostel/internal/domains/reservation/service"
	"hostel/shared/constant"
	"hostel/shared/validator"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
	})
}

// CreateReservation books the first free bed of a room for a guest.
// @Summary Reserve a bed
// @Description Books the lowest-numbered bed of the room that is free for the whole stay. The payment is recorded with the configured default type.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "Unknown room number"
// @Failure 409 {object} response.Error "No bed free for the stay"
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	// guests cannot pick the payment type
	req.PaymentType = constant.Empty

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + res.BookingID + " created")

	response.WithJSON(w, http.StatusCreated, res)
}
