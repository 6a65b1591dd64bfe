package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campsite/signups/internal/db"
	"github.com/campsite/signups/internal/events"
	"github.com/campsite/signups/internal/models"
)

// Gateway is the only path handlers take to the store. Every mutating call
// validates first and commits in a single transaction.
type Gateway struct {
	db    *gorm.DB
	hooks events.Hooks
}

func New(store *db.Store, hooks events.Hooks) *Gateway {
	return &Gateway{db: store.DB, hooks: hooks}
}

// Record is any entity the gateway can look up generically.
type Record interface {
	models.Activity | models.Camper | models.Signup
}

// FindAll returns every row of T ordered by id.
func FindAll[T Record](ctx context.Context, g *Gateway) ([]T, error) {
	var rows []T
	if err := g.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return rows, nil
}

// FindByID returns ErrNotFound when no row has the id.
func FindByID[T Record](ctx context.Context, g *Gateway, id uint) (*T, error) {
	var row T
	if err := g.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// FindCamperWithSignups loads a camper with its signups and their activities.
func (g *Gateway) FindCamperWithSignups(ctx context.Context, id uint) (*models.Camper, error) {
	var c models.Camper
	err := g.db.WithContext(ctx).
		Preload("Signups", func(tx *gorm.DB) *gorm.DB { return tx.Order("signups.id") }).
		Preload("Signups.Activity").
		First(&c, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (g *Gateway) SignupsForCamper(ctx context.Context, camperID uint) ([]models.Signup, error) {
	var signups []models.Signup
	if err := g.db.WithContext(ctx).
		Where("camper_id = ?", camperID).
		Order("id").
		Find(&signups).Error; err != nil {
		return nil, fmt.Errorf("signups for camper %d: %w", camperID, err)
	}
	return signups, nil
}

func (g *Gateway) InsertActivity(ctx context.Context, a *models.Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (g *Gateway) InsertCamper(ctx context.Context, c *models.Camper) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("insert camper: %w", err)
	}
	return nil
}

// InsertSignup stores s after checking that its camper and activity exist.
// On success s.Camper and s.Activity are populated.
func (g *Gateway) InsertSignup(ctx context.Context, s *models.Signup) error {
	if err := s.Validate(); err != nil {
		return err
	}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s.Camper, s.CamperID).Error; err != nil {
			return reference(err, "camper_id", s.CamperID)
		}
		if err := tx.First(&s.Activity, s.ActivityID).Error; err != nil {
			return reference(err, "activity_id", s.ActivityID)
		}
		if err := tx.Omit(clause.Associations).Create(s).Error; err != nil {
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return &ConstraintError{Field: "signup"}
			}
			return fmt.Errorf("insert signup: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	g.hooks.EmitSignupCreated(*s)
	return nil
}

// CamperUpdate carries the fields a PATCH may change. Nil fields keep their
// stored value.
type CamperUpdate struct {
	Name *string
	Age  *int
}

// UpdateCamper applies upd to the camper with id. If any field is rejected
// nothing is written and the stored row is untouched.
func (g *Gateway) UpdateCamper(ctx context.Context, id uint, upd CamperUpdate) (*models.Camper, error) {
	var c models.Camper
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return notFound(err)
		}
		next := c
		if upd.Name != nil {
			next.Name = *upd.Name
		}
		if upd.Age != nil {
			next.Age = *upd.Age
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := tx.Model(&c).Updates(map[string]any{
			"name": next.Name,
			"age":  next.Age,
		}).Error; err != nil {
			return fmt.Errorf("update camper %d: %w", id, err)
		}
		c.Name, c.Age = next.Name, next.Age
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteActivity removes the activity and all its signups, reporting how
// many signups went with it.
func (g *Gateway) DeleteActivity(ctx context.Context, id uint) (int64, error) {
	removed, err := g.cascade(ctx, &models.Activity{}, id, "activity_id")
	if err != nil {
		return 0, err
	}
	g.hooks.EmitActivityDeleted(id, removed)
	return removed, nil
}

// DeleteCamper removes the camper and all its signups.
func (g *Gateway) DeleteCamper(ctx context.Context, id uint) (int64, error) {
	removed, err := g.cascade(ctx, &models.Camper{}, id, "camper_id")
	if err != nil {
		return 0, err
	}
	g.hooks.EmitCamperDeleted(id, removed)
	return removed, nil
}

// cascade deletes the dependent signups and then the owner row in one
// transaction, whether or not the backend declares ON DELETE CASCADE.
func (g *Gateway) cascade(ctx context.Context, owner any, id uint, column string) (int64, error) {
	var removed int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(owner, id).Error; err != nil {
			return notFound(err)
		}
		res := tx.Where(column+" = ?", id).Delete(&models.Signup{})
		if res.Error != nil {
			return fmt.Errorf("delete signups by %s: %w", column, res.Error)
		}
		removed = res.RowsAffected
		if err := tx.Delete(owner).Error; err != nil {
			return fmt.Errorf("delete owner %d: %w", id, err)
		}
		return nil
	})
	return removed, err
}

func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func reference(err error, field string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ConstraintError{Field: field, ID: id}
	}
	return err
}
