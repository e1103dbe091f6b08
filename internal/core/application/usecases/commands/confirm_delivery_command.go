package commands

import (
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand represents a rider reporting the meal was handed to
// the buyer. Confirmation releases the rider's held earnings.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.BookingID
	rider     kernel.Phone

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command for a rider's delivery
// confirmation.
func NewConfirmDeliveryCommand(bookingID kernel.BookingID, rider kernel.Phone) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBookingID(bookingID),
		cmd.setRider(rider),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// BookingID returns the identifier of the booking being delivered.
func (c ConfirmDeliveryCommand) BookingID() kernel.BookingID {
	return c.bookingID
}

// Rider returns the phone of the confirming rider.
func (c ConfirmDeliveryCommand) Rider() kernel.Phone {
	return c.rider
}

func (c *ConfirmDeliveryCommand) setBookingID(bookingID kernel.BookingID) error {
	if err := bookingID.Validate(); err != nil {
		return err
	}
	c.bookingID = bookingID
	return nil
}

func (c *ConfirmDeliveryCommand) setRider(rider kernel.Phone) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	c.rider = rider
	return nil
}
