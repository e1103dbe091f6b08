package riderrepo

import (
	"context"
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/rider"
	"mealbot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly registered rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Phone().String(), aggregate)
	return nil
}

// Update saves an existing rider to the database.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("phone = ?", dto.Phone).Updates(map[string]any{
		"name":                       dto.Name,
		"total_deliveries":           dto.TotalDeliveries,
		"total_earnings_minor_units": dto.TotalEarningsMinorUnits,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.Phone().String(), aggregate)
	return nil
}

// Get retrieves a rider by phone number.
func (r *GormRiderRepository) Get(ctx context.Context, phone kernel.Phone) (*rider.Rider, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone = ?", phone.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", phone.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether a rider is registered under the phone number.
func (r *GormRiderRepository) Exists(ctx context.Context, phone kernel.Phone) (bool, error) {
	if err := phone.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("phone = ?", phone.String()).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
