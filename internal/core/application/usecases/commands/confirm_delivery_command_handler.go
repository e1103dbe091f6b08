package commands

import (
	"context"
	"errors"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/pkg/errs"
)

// ErrBookingNotInTransit means delivery was confirmed out of order: the
// booking never had its pickup confirmed, or was already delivered.
var ErrBookingNotInTransit = errors.New("booking is not in transit")

// ConfirmDeliveryCommandHandler handles a rider's delivery confirmation.
// One transaction finalizes everything the confirmation implies: the booking
// becomes "delivered" with its payment hold released, the order completes,
// and the rider's delivery count and earnings totals advance. A crash between
// any of these leaves no partial state behind.
type ConfirmDeliveryCommandHandler struct {
	uowFactory BookingUoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery
// confirmations.
func NewConfirmDeliveryCommandHandler(uowFactory BookingUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation and returns the updated booking.
// Returns ErrBookingNotFound, ErrBookingNotOwned, or ErrBookingNotInTransit
// for the expected user mistakes.
func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*booking.Booking, error) {
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

	if err = b.ConfirmDelivery(time.Now()); err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) {
			return nil, ErrBookingNotInTransit
		}
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	deliveredOrder, err := orderRepo.Get(ctx, b.OrderID())
	if err != nil {
		return nil, err
	}
	if err = deliveredOrder.Complete(); err != nil {
		return nil, err
	}

	riderRepo := uow.RiderRepository()
	deliveringRider, err := riderRepo.Get(ctx, cmd.Rider())
	if err != nil {
		return nil, err
	}
	if err = deliveringRider.RecordDelivery(b.PaymentHold().Amount()); err != nil {
		return nil, err
	}

	if err = bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, deliveredOrder); err != nil {
		return nil, err
	}

	if err = riderRepo.Update(ctx, deliveringRider); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
