package commands

import (
	"context"
	"errors"
	"time"

	"mealbot/internal/core/domain/model/queue"
	"mealbot/internal/pkg/errs"
)

// ErrOrderNotFound is returned when the order referenced by a command does
// not exist.
var ErrOrderNotFound = errors.New("order not found")

// ConfirmPaymentCommandHandler handles payment confirmation. In one
// transaction the order moves to "payment_confirmed" and a queue entry is
// published for riders, so a paid order can never be invisible to riders and
// an unpaid one can never be claimed.
type ConfirmPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
// Requires a PaymentUoWFactory spanning the order and queue repositories.
func NewConfirmPaymentCommandHandler(uowFactory PaymentUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment confirmation command.
// Returns ErrOrderNotFound when the order does not exist; a repeated
// confirmation fails on the order's status transition.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	paidOrder, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if err = paidOrder.ConfirmPayment(now); err != nil {
		return err
	}

	entry, err := queue.NewEntry(
		paidOrder.ID(),
		paidOrder.Buyer(),
		paidOrder.MealName(),
		paidOrder.Location(),
		paidOrder.Price(),
		now,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, paidOrder); err != nil {
		return err
	}

	if err = uow.QueueRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
