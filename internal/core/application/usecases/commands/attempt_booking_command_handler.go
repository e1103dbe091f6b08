package commands

import (
	"context"
	"errors"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/services"
	"mealbot/internal/pkg/errs"
)

var (
	// ErrOrderAlreadyBeingBooked means another rider holds the order's lock
	// right now; the attempt was refused without touching storage.
	ErrOrderAlreadyBeingBooked = errors.New("order is being booked by another rider")

	// ErrOrderNotAvailable means the order is not claimable: it was already
	// booked, or no queue entry exists for the id.
	ErrOrderNotAvailable = errors.New("order is not available for booking")

	// ErrRiderNotRegistered means the claiming phone number is not a
	// registered rider.
	ErrRiderNotRegistered = errors.New("rider is not registered")
)

// AttemptBookingCommandHandler resolves the race between riders claiming the
// same order. The per-order lock registry turns concurrent attempts into one
// winner and immediate refusals for the rest; the winner then books the order
// in a single transaction covering the queue entry, the order, the new
// booking with its payment hold.
//
// Losing is not an error condition worth logging: it is the expected outcome
// for all but one of the racing riders.
type AttemptBookingCommandHandler struct {
	uowFactory  BookingUoWFactory
	locks       *services.OrderLockRegistry
	riderCutBps int64
}

// NewAttemptBookingCommandHandler creates a handler for booking attempts.
// riderCutBps is the rider earnings cut in basis points; pass
// booking.DefaultRiderCutBps unless configured otherwise.
func NewAttemptBookingCommandHandler(
	uowFactory BookingUoWFactory,
	locks *services.OrderLockRegistry,
	riderCutBps int64,
) AttemptBookingCommandHandler {
	return AttemptBookingCommandHandler{
		uowFactory:  uowFactory,
		locks:       locks,
		riderCutBps: riderCutBps,
	}
}

// Handle processes one claim attempt and returns the created booking on
// success.
//
// The order of checks matters: the lock is taken before any storage read so
// two riders can never both observe the entry as bookable, and it is always
// released on return so a failed attempt never wedges the order.
func (h AttemptBookingCommandHandler) Handle(ctx context.Context, cmd AttemptBookingCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.locks.TryAcquire(cmd.OrderID(), cmd.Rider()) {
		return nil, ErrOrderAlreadyBeingBooked
	}

	defer h.locks.Release(cmd.OrderID(), cmd.Rider())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	registered, err := uow.RiderRepository().Exists(ctx, cmd.Rider())
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, ErrRiderNotRegistered
	}

	queueRepo := uow.QueueRepository()
	entry, err := queueRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotAvailable
	}
	if err != nil {
		return nil, err
	}
	if !entry.IsBookable() {
		return nil, ErrOrderNotAvailable
	}

	orderRepo := uow.OrderRepository()
	claimedOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	newBooking, err := booking.NewBooking(
		kernel.NewBookingID(),
		cmd.OrderID(),
		cmd.Rider(),
		entry.Buyer(),
		entry.MealName(),
		entry.Location(),
		entry.Price(),
		h.riderCutBps,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = entry.MarkBooked(cmd.Rider(), newBooking.ID()); err != nil {
		return nil, err
	}

	if err = claimedOrder.AssignRider(cmd.Rider()); err != nil {
		return nil, err
	}

	if err = uow.BookingRepository().Add(ctx, newBooking); err != nil {
		return nil, err
	}

	// A claim that slipped past the lock (same-holder retry, or a stale
	// takeover racing the original holder) loses on the guarded update.
	if err = queueRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrOrderNotAvailable
		}
		return nil, err
	}

	if err = orderRepo.Update(ctx, claimedOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newBooking, nil
}
