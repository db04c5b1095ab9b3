package contact

import (
	"net/http"

	"hostel/infras/otel"
	"hostel/internal/domains/contact/model/dto"
	"hostel/internal/domains/contact/service"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/validator"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ContactMessage
	otel    otel.Otel
}

func New(service service.ContactMessage, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contact", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.SubmitContactMessage)
		routerGroup.Get("/", handler.GetContactMessages)
		routerGroup.Patch("/{id}/read", handler.MarkContactMessageAsRead)
	})
}

// SubmitContactMessage stores a message from the website contact form.
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.SubmitContactRequest true "Contact Request"
// @Success 201 {object} dto.ContactMessageResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact [post]
func (handler *Handler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitContactMessage")
	defer scope.End()

	req := dto.SubmitContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.Submit(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, message)
}

// GetContactMessages lists contact messages, newest first.
// @Summary Get contact messages
// @Tags Contact
// @Produce json
// @Param unread query boolean false "Only unread messages"
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Success 200 {object} dto.GetContactMessagesResponse
// @Failure 500 {object} response.Error
// @Router /v1/contact [get]
// @Security BearerAuth
func (handler *Handler) GetContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortBy, queryParams.SortDir = constant.Empty, constant.Empty

	unread := shared.ConvertStringToBool(r.URL.Query().Get(dto.QueryUnread))

	messages, err := handler.service.GetAll(ctx, queryParams, unread != nil && *unread)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// MarkContactMessageAsRead flags a contact message as read.
// @Summary Mark a contact message as read
// @Tags Contact
// @Produce json
// @Param id path string true "Contact message ID"
// @Success 200 {object} response.Message "Message marked as read"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkContactMessageAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkContactMessageAsRead")
	defer scope.End()

	if err := handler.service.MarkAsRead(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark contact message as read")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Message marked as read")
}
