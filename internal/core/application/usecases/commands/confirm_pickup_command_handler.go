package commands

import (
	"context"
	"errors"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/pkg/errs"
)

var (
	// ErrBookingNotFound means the booking id does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotOwned means the booking belongs to a different rider.
	ErrBookingNotOwned = errors.New("booking belongs to another rider")
)

// ConfirmPickupCommandHandler handles a rider's pickup confirmation, moving
// the booking from "booked" to "in_transit". Only the booking's own rider may
// confirm, and only once.
type ConfirmPickupCommandHandler struct {
	uowFactory BookingUoWFactory
}

// NewConfirmPickupCommandHandler creates a handler for pickup confirmations.
func NewConfirmPickupCommandHandler(uowFactory BookingUoWFactory) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup confirmation and returns the updated booking.
// Returns ErrBookingNotFound or ErrBookingNotOwned for the expected user
// mistakes; a repeated confirmation fails on the status transition.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bookingRepo := uow.BookingRepository()
	b, err := bookingRepo.Get(ctx, cmd.BookingID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(cmd.Rider()) {
		return nil, ErrBookingNotOwned
	}

	if err = b.ConfirmPickup(time.Now()); err != nil {
		return nil, err
	}

	if err = bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
