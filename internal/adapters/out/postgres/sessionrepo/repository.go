package sessionrepo

import (
	"context"
	"errors"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/session"
	"mealbot/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Save persists the session, inserting or replacing the row for its phone.
func (r *GormSessionRepository) Save(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		UpdateAll: true,
	}).Create(&dto).Error
}

// Get retrieves the session for a phone number.
func (r *GormSessionRepository) Get(ctx context.Context, phone kernel.Phone) (*session.Session, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone = ?", phone.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", phone.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DeleteStale removes sessions untouched since the cutoff.
func (r *GormSessionRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&SessionDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
