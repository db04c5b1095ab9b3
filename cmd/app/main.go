package main

import (
	"context"
	"os/signal"
	"syscall"

	"hostel/config"
	"hostel/di"
	_ "hostel/docs"
	"hostel/helper"
	"hostel/shared/logger"

	"github.com/rs/zerolog/log"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init -g ./cmd/app/main.go -o ./docs -d ../../

// @title Hostel Reservation API
// @version 1.0
// @description Rooms, beds, guests and bookings of a hostel, with bed allocation on reservation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg)
	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeService()

	defer app.DB.Close()

	defer func() {
		if err := app.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.App.Admin.BootstrapEmail != "" {
		if err := app.Admin.Bootstrap(ctx, cfg.App.Admin.BootstrapEmail, cfg.App.Admin.BootstrapPassword); err != nil {
			log.Error().Err(err).Msg("Failed to bootstrap admin account")
		}
	}

	go app.Tracker.Run(ctx)

	app.HTTP.Serve()
}
