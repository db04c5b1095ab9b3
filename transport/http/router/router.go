package router

import (
	"hostel/internal/handlers/auth"
	"hostel/internal/handlers/bed"
	"hostel/internal/handlers/booking"
	"hostel/internal/handlers/contact"
	"hostel/internal/handlers/guest"
	"hostel/internal/handlers/notification"
	"hostel/internal/handlers/payment"
	"hostel/internal/handlers/reservation"
	"hostel/internal/handlers/room"
	"hostel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Room         room.Handler
	Bed          bed.Handler
	Guest        guest.Handler
	Booking      booking.Handler
	Reservation  reservation.Handler
	Payment      payment.Handler
	Notification notification.Handler
	Contact      contact.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Bed.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
	}
}
