package order

import (
	"errors"
	"fmt"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"
)

// MinLocationLength is the shortest delivery-location text accepted.
// Locations are free-text landmarks ("Britam Tower"), never coordinates.
const MinLocationLength = 3

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a buyer's meal order. It carries the meal
// reference, price, and delivery landmark, and owns the order's status
// lifecycle from composition through payment to delivery.
//
// Invariants:
//   - Valid identifier, buyer phone, meal name, and price
//   - Delivery location is free text of at least MinLocationLength characters
//   - Status transitions are strictly forward (see Status)
//   - A rider is recorded exactly when the order is assigned or delivered
type Order struct {
	id           kernel.OrderID
	buyer        kernel.Phone
	mealID       string
	mealName     string
	price        kernel.Money
	location     string
	promoCode    string
	freeDelivery bool
	status       Status
	rider        *kernel.Phone
	createdAt    time.Time
	paidAt       *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in PendingPayment status.
//
// Parameters:
//   - id: unique order identifier
//   - buyer: phone of the buyer who owns the order
//   - mealID, mealName: menu reference and display name
//   - price: order price (must be positive)
//   - location: free-text delivery landmark
//   - createdAt: creation time recorded on the order
func NewOrder(
	id kernel.OrderID,
	buyer kernel.Phone,
	mealID string,
	mealName string,
	price kernel.Money,
	location string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        PendingPayment,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyer(buyer),
		o.setMeal(mealID, mealName),
		o.setPrice(price),
		o.setLocation(location),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. The stored status and
// rider assignment are validated for mutual consistency.
func RestoreOrder(
	id kernel.OrderID,
	buyer kernel.Phone,
	mealID string,
	mealName string,
	price kernel.Money,
	location string,
	promoCode string,
	freeDelivery bool,
	status Status,
	rider *kernel.Phone,
	createdAt time.Time,
	paidAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, buyer, mealID, mealName, price, location, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveRider(rider != nil); err != nil {
		return nil, err
	}
	if rider != nil {
		if err = rider.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.rider = rider
	o.promoCode = promoCode
	o.freeDelivery = freeDelivery
	o.paidAt = paidAt
	return o, nil
}

// Validate ensures the Order was created via its factory functions.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Buyer returns the phone of the buyer who owns the order.
func (o *Order) Buyer() kernel.Phone {
	return o.buyer
}

// MealID returns the menu reference of the ordered meal.
func (o *Order) MealID() string {
	return o.mealID
}

// MealName returns the display name of the ordered meal.
func (o *Order) MealName() string {
	return o.mealName
}

// Price returns the order price.
func (o *Order) Price() kernel.Money {
	return o.price
}

// Location returns the free-text delivery landmark.
func (o *Order) Location() string {
	return o.location
}

// PromoCode returns the promo code applied to the order, if any.
func (o *Order) PromoCode() string {
	return o.promoCode
}

// FreeDelivery reports whether a promo granted free delivery.
func (o *Order) FreeDelivery() bool {
	return o.freeDelivery
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Rider returns the assigned rider's phone, or nil before assignment.
func (o *Order) Rider() *kernel.Phone {
	return o.rider
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// PaidAt returns the payment confirmation time, or nil before payment.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// ApplyPromo records a promo code granting free delivery.
func (o *Order) ApplyPromo(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("promoCode")
	}
	o.promoCode = code
	o.freeDelivery = true
	return nil
}

// ConfirmPayment transitions the order to PaymentConfirmed and records the
// payment time. Only valid from PendingPayment.
func (o *Order) ConfirmPayment(at time.Time) error {
	newStatus, err := o.status.ConfirmPayment()
	if err != nil {
		return err
	}

	paidAt := at.UTC()
	o.status = newStatus
	o.paidAt = &paidAt
	return nil
}

// AssignRider records the winning rider and transitions the order to
// AssignedToRider. Only valid from PaymentConfirmed; the assignment is
// immutable afterwards because booking is exclusive.
func (o *Order) AssignRider(rider kernel.Phone) error {
	if err := rider.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.AssignRider()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.rider = &rider
	return nil
}

// Complete marks the order as delivered, the final state.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyer(buyer kernel.Phone) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	o.buyer = buyer
	return nil
}

func (o *Order) setMeal(mealID, mealName string) error {
	if mealID == "" {
		return errs.NewValueIsRequiredError("mealId")
	}
	if mealName == "" {
		return errs.NewValueIsRequiredError("mealName")
	}
	o.mealID = mealID
	o.mealName = mealName
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if price.MinorUnits() == 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			errors.New("price must be greater than 0"))
	}
	o.price = price
	return nil
}

func (o *Order) setLocation(location string) error {
	if len(location) < MinLocationLength {
		return errs.NewValueIsInvalidErrorWithCause("location",
			fmt.Errorf("%q is shorter than %d characters", location, MinLocationLength))
	}
	o.location = location
	return nil
}
