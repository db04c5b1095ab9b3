package handler

import (
	"net/http"
	"sync"

	"hostel/config"
	"hostel/di"
	"hostel/shared/logger"
)

var (
	once sync.Once
	app  *di.App
)

// Handler is the serverless entrypoint. The container is built on the first request and
// reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseJSONOutput(cfg)
		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.HTTP.ServeHTTP(w, r)
}
