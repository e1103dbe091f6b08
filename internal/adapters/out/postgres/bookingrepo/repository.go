package bookingrepo

import (
	"context"
	"errors"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM. Every write
// touches the bookings and payment_holds tables in the caller's transaction,
// which is what makes "hold released iff booking delivered" hold in storage.
type GormBookingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormBookingRepository creates a new GORM booking repository.
func NewGormBookingRepository(db *gorm.DB, tracker aggregateTracker) *GormBookingRepository {
	return &GormBookingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new booking and its payment hold to the database.
func (r *GormBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	bookingDTO, holdDTO := fromDomain(aggregate)

	if err := r.db.WithContext(ctx).Create(&bookingDTO).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&holdDTO).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update saves an existing booking and its payment hold to the database.
func (r *GormBookingRepository) Update(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	bookingDTO, holdDTO := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&BookingDTO{}).Where("id = ?", bookingDTO.ID).Updates(map[string]any{
		"status":       bookingDTO.Status,
		"picked_up_at": bookingDTO.PickedUpAt,
		"delivered_at": bookingDTO.DeliveredAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	result = r.db.WithContext(ctx).Model(&PaymentHoldDTO{}).Where("booking_id = ?", holdDTO.BookingID).Updates(map[string]any{
		"status":      holdDTO.Status,
		"released_at": holdDTO.ReleasedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves a booking with its payment hold by booking ID.
func (r *GormBookingRepository) Get(ctx context.Context, id kernel.BookingID) (*booking.Booking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var bookingDTO BookingDTO
	if err := r.db.WithContext(ctx).First(&bookingDTO, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("booking", id.String())
		}
		return nil, err
	}

	var holdDTO PaymentHoldDTO
	if err := r.db.WithContext(ctx).First(&holdDTO, "booking_id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("paymentHold", id.String())
		}
		return nil, err
	}

	return toDomain(bookingDTO, holdDTO)
}

// GetActiveByRider retrieves the rider's undelivered bookings, newest first.
func (r *GormBookingRepository) GetActiveByRider(ctx context.Context, rider kernel.Phone) ([]*booking.Booking, error) {
	if err := rider.Validate(); err != nil {
		return nil, err
	}

	var bookingDTOs []BookingDTO
	err := r.db.WithContext(ctx).
		Where("rider = ? AND status != ?", rider.String(), int(booking.StatusDelivered)).
		Order("booked_at DESC").
		Find(&bookingDTOs).Error
	if err != nil {
		return nil, err
	}

	bookings := make([]*booking.Booking, 0, len(bookingDTOs))
	for _, bookingDTO := range bookingDTOs {
		var holdDTO PaymentHoldDTO
		if err = r.db.WithContext(ctx).First(&holdDTO, "booking_id = ?", bookingDTO.ID).Error; err != nil {
			return nil, err
		}

		b, domainErr := toDomain(bookingDTO, holdDTO)
		if domainErr != nil {
			return nil, domainErr
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}
