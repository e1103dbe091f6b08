package queuerepo

import (
	"context"
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/queue"
	"mealbot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormQueueRepository implements QueueRepository using GORM.
type GormQueueRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormQueueRepository creates a new GORM queue repository.
func NewGormQueueRepository(db *gorm.DB, tracker aggregateTracker) *GormQueueRepository {
	return &GormQueueRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new queue entry to the database.
func (r *GormQueueRepository) Add(ctx context.Context, entry *queue.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.OrderID().String(), entry)
	return nil
}

// Update saves an existing queue entry to the database. The write is guarded
// on the stored status still being pending_booking, so a concurrent claim
// that already booked the entry makes this update affect zero rows instead
// of silently overwriting the winner.
func (r *GormQueueRepository) Update(ctx context.Context, entry *queue.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("order_id = ? AND status = ?", dto.OrderID, int(queue.PendingBooking)).
		Updates(map[string]any{
			"status":     dto.Status,
			"rider":      dto.Rider,
			"booking_id": dto.BookingID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause(
			"queueEntry", dto.OrderID, gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(entry.OrderID().String(), entry)
	return nil
}

// Get retrieves the queue entry for an order.
func (r *GormQueueRepository) Get(ctx context.Context, orderID kernel.OrderID) (*queue.Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("queueEntry", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves all claimable entries, oldest first.
func (r *GormQueueRepository) GetAllPending(ctx context.Context) ([]*queue.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(queue.PendingBooking)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*queue.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
