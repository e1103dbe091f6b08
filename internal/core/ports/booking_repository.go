package ports

import (
	"context"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for booking aggregates.
// A booking is always stored together with its payment hold; implementations
// write both in the same transaction so hold release and delivery status can
// never diverge in storage.
type BookingRepository interface {
	// Add persists a new booking with its payment hold.
	Add(ctx context.Context, aggregate *booking.Booking) error

	// Update persists changes to an existing booking and its hold.
	Update(ctx context.Context, aggregate *booking.Booking) error

	// Get retrieves a booking aggregate by its identifier.
	// Returns errs.ErrObjectNotFound when no such booking exists.
	Get(ctx context.Context, id kernel.BookingID) (*booking.Booking, error)

	// GetActiveByRider retrieves the rider's bookings that are not yet
	// delivered, newest first.
	GetActiveByRider(ctx context.Context, rider kernel.Phone) ([]*booking.Booking, error)
}
