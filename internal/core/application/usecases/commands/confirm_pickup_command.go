package commands

import (
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand represents a rider reporting they collected the meal
// from the seller and are heading to the buyer.
type ConfirmPickupCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.BookingID
	rider     kernel.Phone

	guard guard.ConstructorGuard
}

// NewConfirmPickupCommand creates a command for a rider's pickup confirmation.
func NewConfirmPickupCommand(bookingID kernel.BookingID, rider kernel.Phone) (ConfirmPickupCommand, error) {
	cmd := ConfirmPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingID(bookingID),
		cmd.setRider(rider),
	); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

// BookingID returns the identifier of the booking being picked up.
func (c ConfirmPickupCommand) BookingID() kernel.BookingID {
	return c.bookingID
}

// Rider returns the phone of the confirming rider.
func (c ConfirmPickupCommand) Rider() kernel.Phone {
	return c.rider
}

func (c *ConfirmPickupCommand) setBookingID(bookingID kernel.BookingID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}
	c.bookingID = bookingID
	return nil
}

func (c *ConfirmPickupCommand) setRider(rider kernel.Phone) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	c.rider = rider
	return nil
}
