package di

import (
	"hostel/infras/kafka"
	"hostel/infras/postgres"
	adminService "hostel/internal/domains/admin/service"
	"hostel/internal/jobs/latest"
	"hostel/internal/notifier"
	"hostel/transport/http"
)

// App holds what the API process runs and tears down.
type App struct {
	HTTP    *http.HTTP
	Tracker *latest.Tracker
	Admin   adminService.Admin
	Kafka   kafka.Client
	DB      *postgres.Connection
}

// Worker holds what the notification process runs and tears down.
type Worker struct {
	Notifier *notifier.Dispatcher
	Kafka    kafka.Client
}
