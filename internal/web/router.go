package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/campsite/signups/internal/handlers"
	"github.com/campsite/signups/internal/logging"
	"github.com/campsite/signups/internal/metrics"
)

func Router(api *handlers.API, log *logrus.Entry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/", api.Home)
	r.Get("/healthz", api.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Campers
	r.Get("/campers", api.ListCampers)
	r.Post("/campers", api.CreateCamper)
	r.Get("/campers/{id}", api.ShowCamper)
	r.Patch("/campers/{id}", api.UpdateCamper)

	// Activities
	r.Get("/activities", api.ListActivities)
	r.Delete("/activities/{id}", api.DeleteActivity)

	// Signups
	r.Post("/signups", api.CreateSignup)
	r.Get("/signups/{id}/qr.png", api.SignupQR)

	return r
}
