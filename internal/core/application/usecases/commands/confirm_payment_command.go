package commands

import (
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand represents a payment confirmation for an order.
// Confirmation moves the order forward and makes it visible to riders.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command to confirm payment of an order.
func NewConfirmPaymentCommand(orderID kernel.OrderID) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the paid order.
func (c ConfirmPaymentCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c *ConfirmPaymentCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
