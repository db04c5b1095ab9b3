package bed

import (
	"net/http"

	"hostel/infras/otel"
	"hostel/internal/domains/bed/model"
	"hostel/internal/domains/bed/service"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Bed
	otel    otel.Otel
}

func New(service service.Bed, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/beds", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBeds)
		routerGroup.Get("/{id}", handler.GetBedByID)
		routerGroup.Delete("/{id}", handler.DeleteBed)
	})
}

// GetBeds retrieves beds, optionally of one room.
// @Summary Get all beds
// @Tags Bed
// @Produce json
// @Param room_id query string false "Filter by room ID"
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Success 200 {object} dto.GetBedsResponse
// @Failure 500 {object} response.Error
// @Router /v1/beds [get]
// @Security BearerAuth
func (handler *Handler) GetBeds(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBeds")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldBedNumber, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if roomID := r.URL.Query().Get(model.FieldRoomID); roomID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	beds, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get beds")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, beds)
}

// GetBedByID retrieves a bed.
// @Summary Get a bed by ID
// @Tags Bed
// @Produce json
// @Param id path string true "Bed ID"
// @Success 200 {object} dto.BedResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/beds/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBedByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBedByID")
	defer scope.End()

	bed, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bed by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bed)
}

// DeleteBed removes a bed that no booking references.
// @Summary Delete a bed
// @Tags Bed
// @Produce json
// @Param id path string true "Bed ID"
// @Success 200 {object} response.Message "Bed deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/beds/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBed")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete bed")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Bed deleted successfully")
}
