package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campsite/signups/internal/config"
	"github.com/campsite/signups/internal/db"
	"github.com/campsite/signups/internal/events"
	"github.com/campsite/signups/internal/handlers"
	"github.com/campsite/signups/internal/logging"
	"github.com/campsite/signups/internal/metrics"
	"github.com/campsite/signups/internal/models"
	"github.com/campsite/signups/internal/services"
	"github.com/campsite/signups/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logging.New(cfg.LogLevel)

	store, err := db.Open(cfg.DatabaseURI, logging.Gorm(log))
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Error("db close")
		}
	}()
	log.Info("database ready")

	gw := services.New(store, hooks(log))
	srv := web.NewServer(config.ListenAddr, web.Router(handlers.New(gw, log), log))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("camp signups listening on %s", config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func hooks(log *logrus.Entry) events.Hooks {
	return events.Hooks{
		SignupCreated: func(s models.Signup) {
			log.WithFields(logrus.Fields{
				"signup_id":   s.ID,
				"camper_id":   s.CamperID,
				"activity_id": s.ActivityID,
				"time":        s.Time,
			}).Info("signup created")
		},
		ActivityDeleted: func(id uint, removed int64) {
			metrics.CascadeDeleted("activity", removed)
			log.WithFields(logrus.Fields{"activity_id": id, "removed_signups": removed}).Info("activity deleted")
		},
		CamperDeleted: func(id uint, removed int64) {
			metrics.CascadeDeleted("camper", removed)
			log.WithFields(logrus.Fields{"camper_id": id, "removed_signups": removed}).Info("camper deleted")
		},
	}
}
