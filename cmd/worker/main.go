package main

import (
	"context"
	"os/signal"
	"syscall"

	"hostel/config"
	"hostel/di"
	"hostel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseJSONOutput(cfg)
	logger.SetLogLevel(cfg)

	worker := di.InitializeWorker()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Starting notification worker.")

	worker.Notifier.Run(ctx, worker.Kafka)

	if err := worker.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	log.Info().Msg("Notification worker stopped.")
}
