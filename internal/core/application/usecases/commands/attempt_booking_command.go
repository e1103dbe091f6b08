package commands

import (
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrAttemptBookingCommandIsNotConstructed = errors.New(
	"AttemptBookingCommand must be created via NewAttemptBookingCommand constructor",
)

// AttemptBookingCommand represents a rider trying to claim an order from the
// queue. Many riders may issue this command for the same order at once;
// exactly one of them wins.
//
// Example:
//
//	cmd, _ := NewAttemptBookingCommand(orderID, riderPhone)
//	booked, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrOrderAlreadyBeingBooked):
//	    // another rider is claiming this order right now
//	case errors.Is(err, ErrOrderNotAvailable):
//	    // the order was already claimed or never existed
//	case err != nil:
//	    // infrastructure failure
//	default:
//	    fmt.Printf("booked %s, earnings %s\n", booked.ID(), booked.PaymentHold().Amount())
//	}
type AttemptBookingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	rider   kernel.Phone

	guard guard.ConstructorGuard
}

// NewAttemptBookingCommand creates a command for a rider's claim attempt.
func NewAttemptBookingCommand(orderID kernel.OrderID, rider kernel.Phone) (AttemptBookingCommand, error) {
	cmd := AttemptBookingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRider(rider),
	); err != nil {
		return AttemptBookingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttemptBookingCommand) Validate() error {
	return c.guard.Validate(ErrAttemptBookingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c AttemptBookingCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Rider returns the phone of the claiming rider.
func (c AttemptBookingCommand) Rider() kernel.Phone {
	return c.rider
}

func (c *AttemptBookingCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AttemptBookingCommand) setRider(rider kernel.Phone) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	c.rider = rider
	return nil
}
