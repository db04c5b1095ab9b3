//go:build wireinject
// +build wireinject

package di

import (
	"hostel/config"
	"hostel/infras/jwt"
	"hostel/infras/kafka"
	"hostel/infras/mailer"
	"hostel/infras/otel"
	"hostel/infras/postgres"
	"hostel/infras/redis"
	"hostel/infras/s3"
	"hostel/infras/sms"
	"hostel/internal/jobs/latest"
	"hostel/internal/notifier"
	"hostel/permissions"
	"hostel/shared/cache"
	"hostel/shared/sequence"
	"hostel/transport/http"
	"hostel/transport/http/middleware"
	"hostel/transport/http/router"

	"github.com/google/wire"

	adminRepository "hostel/internal/domains/admin/repository"
	adminService "hostel/internal/domains/admin/service"
	bedRepository "hostel/internal/domains/bed/repository"
	bedService "hostel/internal/domains/bed/service"
	bookingRepository "hostel/internal/domains/booking/repository"
	bookingService "hostel/internal/domains/booking/service"
	contactRepository "hostel/internal/domains/contact/repository"
	contactService "hostel/internal/domains/contact/service"
	guestRepository "hostel/internal/domains/guest/repository"
	guestService "hostel/internal/domains/guest/service"
	notificationRepository "hostel/internal/domains/notification/repository"
	notificationService "hostel/internal/domains/notification/service"
	paymentRepository "hostel/internal/domains/payment/repository"
	paymentService "hostel/internal/domains/payment/service"
	reservationService "hostel/internal/domains/reservation/service"
	roomRepository "hostel/internal/domains/room/repository"
	roomService "hostel/internal/domains/room/service"

	authHandler "hostel/internal/handlers/auth"
	bedHandler "hostel/internal/handlers/bed"
	bookingHandler "hostel/internal/handlers/booking"
	contactHandler "hostel/internal/handlers/contact"
	guestHandler "hostel/internal/handlers/guest"
	notificationHandler "hostel/internal/handlers/notification"
	paymentHandler "hostel/internal/handlers/payment"
	reservationHandler "hostel/internal/handlers/reservation"
	roomHandler "hostel/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var notifications = wire.NewSet(
	mailer.New,
	sms.New,
	s3.New,
	notifier.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	sequence.New,
)

var repositories = wire.NewSet(
	adminRepository.New,
	roomRepository.New,
	bedRepository.New,
	guestRepository.New,
	bookingRepository.New,
	paymentRepository.New,
	notificationRepository.New,
	contactRepository.New,
)

var domains = wire.NewSet(
	repositories,
	adminService.New,
	roomService.New,
	bedService.New,
	guestService.New,
	bookingService.New,
	paymentService.New,
	notificationService.New,
	contactService.New,
	reservationService.New,
)

var jobs = wire.NewSet(
	latest.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bedHandler.New,
	guestHandler.New,
	bookingHandler.New,
	reservationHandler.New,
	paymentHandler.New,
	notificationHandler.New,
	contactHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		jobs,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return nil
}

func InitializeWorker() *Worker {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		notifications,
		wire.Struct(new(Worker), "*"),
	)

	return nil
}
