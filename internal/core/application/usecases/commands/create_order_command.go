package commands

import (
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer finishing the ordering conversation:
// a meal was picked, a delivery landmark captured, and the order summary
// confirmed. The resulting order awaits payment.
//
// Example:
//
//	orderID := kernel.NewOrderID()
//	cmd, err := NewCreateOrderCommand(orderID, buyer, "3", "Vegan Bowl", price, "Britam Tower", "")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	buyer     kernel.Phone
	mealID    string
	mealName  string
	price     kernel.Money
	location  string
	promoCode string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new meal order.
// The promo code is optional; everything else is validated here so the
// handler only deals with persistence.
func NewCreateOrderCommand(
	orderID kernel.OrderID,
	buyer kernel.Phone,
	mealID string,
	mealName string,
	price kernel.Money,
	location string,
	promoCode string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		mealID:    mealID,
		mealName:  mealName,
		location:  location,
		promoCode: promoCode,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyer(buyer),
		cmd.setPrice(price),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// Buyer returns the phone of the ordering buyer.
func (c CreateOrderCommand) Buyer() kernel.Phone {
	return c.buyer
}

// MealID returns the menu reference of the chosen meal.
func (c CreateOrderCommand) MealID() string {
	return c.mealID
}

// MealName returns the display name of the chosen meal.
func (c CreateOrderCommand) MealName() string {
	return c.mealName
}

// Price returns the order price.
func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

// Location returns the free-text delivery landmark.
func (c CreateOrderCommand) Location() string {
	return c.location
}

// PromoCode returns the promo code entered by the buyer, or empty.
func (c CreateOrderCommand) PromoCode() string {
	return c.promoCode
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyer(buyer kernel.Phone) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	c.buyer = buyer
	return nil
}

func (c *CreateOrderCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	c.price = price
	return nil
}
