package commands

import (
	"context"
	"time"

	"mealbot/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// New orders start in "pending_payment" status; meal details and location
// were already validated by the command.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. Applies the promo code if the
// buyer entered one, then persists the order inside a transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Buyer(),
		cmd.MealID(),
		cmd.MealName(),
		cmd.Price(),
		cmd.Location(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if cmd.PromoCode() != "" {
		if err = newOrder.ApplyPromo(cmd.PromoCode()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
