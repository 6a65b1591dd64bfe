// Command seed resets the store named by DB_URI to a small demo camp.
package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/campsite/signups/internal/config"
	"github.com/campsite/signups/internal/db"
	"github.com/campsite/signups/internal/events"
	"github.com/campsite/signups/internal/logging"
	"github.com/campsite/signups/internal/models"
	"github.com/campsite/signups/internal/services"
)

var activities = []models.Activity{
	{Name: "Archery", Difficulty: 2},
	{Name: "Kayaking", Difficulty: 3},
	{Name: "Swimming", Difficulty: 1},
	{Name: "Rock Climbing", Difficulty: 5},
	{Name: "Arts and Crafts", Difficulty: 1},
	{Name: "Orienteering", Difficulty: 4},
}

var campers = []models.Camper{
	{Name: "Aisha", Age: 12},
	{Name: "Ben", Age: 9},
	{Name: "Cleo", Age: 15},
	{Name: "Dmitri", Age: 17},
	{Name: "Esme", Age: 8},
	{Name: "Farid", Age: 11},
}

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
	defer store.Close() //nolint:errcheck

	if err := store.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Signup{}, &models.Camper{}, &models.Activity{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		log.Fatalf("clear tables: %v", err)
	}

	ctx := context.Background()
	gw := services.New(store, events.Hooks{})
	for i := range activities {
		if err := gw.InsertActivity(ctx, &activities[i]); err != nil {
			log.Fatalf("activity %q: %v", activities[i].Name, err)
		}
	}
	for i := range campers {
		if err := gw.InsertCamper(ctx, &campers[i]); err != nil {
			log.Fatalf("camper %q: %v", campers[i].Name, err)
		}
	}

	// Each camper gets two activities, spread across the morning.
	signups := 0
	for i, c := range campers {
		for j := 0; j < 2; j++ {
			a := activities[(i+j*3)%len(activities)]
			s := models.Signup{CamperID: c.ID, ActivityID: a.ID, Time: 9 + (i+j)%8}
			if err := gw.InsertSignup(ctx, &s); err != nil {
				log.Fatalf("signup %s/%s: %v", c.Name, a.Name, err)
			}
			signups++
		}
	}

	log.WithFields(logrus.Fields{
		"activities": len(activities),
		"campers":    len(campers),
		"signups":    signups,
	}).Info("seeded")
}
