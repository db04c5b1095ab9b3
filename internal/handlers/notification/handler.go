package notification

import (
	"net/http"

	"hostel/infras/otel"
	"hostel/internal/domains/notification/model/dto"
	"hostel/internal/domains/notification/service"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
		routerGroup.Patch("/{id}/read", handler.MarkNotificationAsRead)
		routerGroup.Delete("/{id}", handler.DeleteNotification)
	})
}

// GetNotifications lists admin notifications, newest first.
// @Summary Get notifications
// @Tags Notification
// @Produce json
// @Param unread query boolean false "Only unread notifications"
// @Param page query integer false "Page"
// @Param limit query integer false "Limit"
// @Success 200 {object} dto.GetNotificationsResponse
// @Failure 500 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.SortBy, queryParams.SortDir = constant.Empty, constant.Empty

	unread := shared.ConvertStringToBool(r.URL.Query().Get(dto.QueryUnread))

	notifications, err := handler.service.GetAll(ctx, queryParams, unread != nil && *unread)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notifications)
}

// MarkNotificationAsRead flags a notification as read.
// @Summary Mark a notification as read
// @Tags Notification
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification marked as read"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkNotificationAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkNotificationAsRead")
	defer scope.End()

	if err := handler.service.MarkAsRead(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark notification as read")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Notification marked as read")
}

// DeleteNotification deletes a notification.
// @Summary Delete a notification
// @Tags Notification
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteNotification")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete notification")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Notification deleted successfully")
}
