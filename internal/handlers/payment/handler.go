package payment

import (
	"net/http"
	"slices"

	"hostel/infras/otel"
	"hostel/internal/domains/payment/model"
	"hostel/internal/domains/payment/model/dto"
	"hostel/internal/domains/payment/service"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

var sortable = []string{model.FieldPaymentDate, model.FieldAmount, model.FieldPaymentType}

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
	})
}

// GetPayments lists payments, newest first unless sorted otherwise.
// @Summary Get all payments
// @Tags Payment
// @Produce json
// @Param type query string false "CREDIT_CARD, CASH or PAYPAL"
// @Param from query string false "First payment date (YYYY-MM-DD)"
// @Param to query string false "Last payment date, inclusive (YYYY-MM-DD)"
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Success 200 {object} dto.GetPaymentsResponse
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	// payments have no created_at, so unknown columns fall back to the service's date order
	if slices.Contains(sortable, queryParams.SortBy) {
		queryParams.RestrictSort(model.TableName, sortable...)
	} else {
		queryParams.SortBy, queryParams.SortDir = constant.Empty, constant.Empty
	}

	filter := dto.PaymentFilter{}
	if err := filter.FromRequest(r); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("invalid payment filter")

		response.WithError(w, err)

		return
	}

	payments, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a payment.
// @Summary Get a payment by ID
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	payment, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}
