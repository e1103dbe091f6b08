package commands

import (
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var (
	ErrRegisterRiderCommandIsNotConstructed = errors.New(
		"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
	)
	ErrRiderNameIsRequired = errors.New("rider name is required")
)

// RegisterRiderCommand represents an operator registering a new delivery
// rider. Only registered phone numbers can claim orders.
type RegisterRiderCommand struct { //nolint:recvcheck //using for validation
	phone kernel.Phone
	name  string

	guard guard.ConstructorGuard
}

// NewRegisterRiderCommand creates a command to register a rider.
func NewRegisterRiderCommand(phone kernel.Phone, name string) (RegisterRiderCommand, error) {
	cmd := RegisterRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPhone(phone),
		cmd.setName(name),
	); err != nil {
		return RegisterRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

// Phone returns the rider's phone number.
func (c RegisterRiderCommand) Phone() kernel.Phone {
	return c.phone
}

// Name returns the rider's display name.
func (c RegisterRiderCommand) Name() string {
	return c.name
}

func (c *RegisterRiderCommand) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *RegisterRiderCommand) setName(name string) error {
	if name == "" {
		return ErrRiderNameIsRequired
	}
	c.name = name
	return nil
}
