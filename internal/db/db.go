package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campsite/signups/internal/models"
)

// Store owns the connection pool. Open it once at startup and Close it at
// shutdown.
type Store struct {
	DB *gorm.DB
}

// Open connects to the backend named by uri, tunes the pool and migrates the
// activities, campers and signups tables. A nil log silences GORM.
func Open(uri string, log logger.Interface) (*Store, error) {
	dialector, backend, err := Dialector(uri)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Default.LogMode(logger.Silent)
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", backend, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if backend == SQLite {
		// SQLite works best with a single writer; cap the pool accordingly.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := conn.AutoMigrate(
		&models.Activity{},
		&models.Camper{},
		&models.Signup{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{DB: conn}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
