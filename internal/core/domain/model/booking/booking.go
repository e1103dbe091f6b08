package booking

import (
	"errors"
	"fmt"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"
)

// DefaultRiderCutBps is the default rider earnings cut: 15% of order price.
const DefaultRiderCutBps int64 = 1500

// ErrBookingIsNotConstructed is returned when a Booking instance was not
// created through the NewBooking or RestoreBooking factory functions.
var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking constructor")

// Booking is the aggregate root recording one rider's exclusive claim on one
// order. It carries everything the rider needs mid-delivery (meal, landmark,
// buyer contact) plus the escrowed earnings as an owned PaymentHold.
//
// Invariants:
//   - References exactly one order and exactly one rider; both immutable
//   - Status follows booked -> in_transit -> delivered with no skipping
//   - Pickup and delivery timestamps are recorded exactly once
//   - The payment hold is Released iff the booking is StatusDelivered
type Booking struct {
	id       kernel.BookingID
	orderID  kernel.OrderID
	rider    kernel.Phone
	buyer    kernel.Phone
	mealName string
	location string
	price    kernel.Money

	status      Status
	hold        *PaymentHold
	bookedAt    time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewBooking creates a Booking in Booked status together with its Held
// payment hold. The earnings amount is the order price scaled by riderCutBps
// (basis points), computed in integer minor units.
func NewBooking(
	id kernel.BookingID,
	orderID kernel.OrderID,
	rider kernel.Phone,
	buyer kernel.Phone,
	mealName string,
	location string,
	price kernel.Money,
	riderCutBps int64,
	bookedAt time.Time,
) (*Booking, error) {
	b := &Booking{
		status:        Booked,
		bookedAt:      bookedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setRider(rider),
		b.setBuyer(buyer),
		b.setMealName(mealName),
		b.setLocation(location),
		b.setPrice(price),
	); err != nil {
		return nil, err
	}

	earnings, err := price.MultiplyBasisPoints(riderCutBps)
	if err != nil {
		return nil, err
	}

	hold, err := newPaymentHold(id, orderID, rider, earnings, bookedAt)
	if err != nil {
		return nil, err
	}

	b.hold = hold
	return b, nil
}

// RestoreBooking reconstructs a Booking and its hold from persistence,
// validating the timestamp and hold/status coupling invariants.
func RestoreBooking(
	id kernel.BookingID,
	orderID kernel.OrderID,
	rider kernel.Phone,
	buyer kernel.Phone,
	mealName string,
	location string,
	price kernel.Money,
	status Status,
	hold *PaymentHold,
	bookedAt time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
) (*Booking, error) {
	b := &Booking{
		bookedAt:      bookedAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setOrderID(orderID),
		b.setRider(rider),
		b.setBuyer(buyer),
		b.setMealName(mealName),
		b.setLocation(location),
		b.setPrice(price),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := hold.Validate(); err != nil {
		return nil, err
	}
	if !hold.BookingID().IsEqual(id) {
		return nil, errs.NewValueIsInvalidErrorWithCause("paymentHold",
			fmt.Errorf("hold belongs to %s, not %s", hold.BookingID(), id))
	}

	delivered := status == StatusDelivered
	if delivered != (hold.Status() == Released) {
		return nil, errs.NewValueIsInvalidErrorWithCause("paymentHold",
			fmt.Errorf("hold must be released exactly when booking is delivered, got booking %s with hold %s",
				status, hold.Status()))
	}
	if (status == InTransit || delivered) != (pickedUpAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("pickedUpAt",
			fmt.Errorf("%s booking must reference pickup time consistently", status))
	}
	if delivered != (deliveredAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("deliveredAt",
			fmt.Errorf("%s booking must reference delivery time consistently", status))
	}

	b.status = status
	b.hold = hold
	b.pickedUpAt = pickedUpAt
	b.deliveredAt = deliveredAt
	return b, nil
}

// Validate ensures the Booking was created via its factory functions.
func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

// IsEqual compares two bookings by identifier.
func (b *Booking) IsEqual(other *Booking) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() kernel.BookingID {
	return b.id
}

// OrderID returns the id of the claimed order.
func (b *Booking) OrderID() kernel.OrderID {
	return b.orderID
}

// Rider returns the phone of the rider who owns the claim.
func (b *Booking) Rider() kernel.Phone {
	return b.rider
}

// Buyer returns the phone of the buyer awaiting delivery.
func (b *Booking) Buyer() kernel.Phone {
	return b.buyer
}

// MealName returns the display name of the meal being delivered.
func (b *Booking) MealName() string {
	return b.mealName
}

// Location returns the free-text delivery landmark.
func (b *Booking) Location() string {
	return b.location
}

// Price returns the order price.
func (b *Booking) Price() kernel.Money {
	return b.price
}

// Status returns the current lifecycle status.
func (b *Booking) Status() Status {
	return b.status
}

// PaymentHold returns the escrow record for the rider's earnings.
func (b *Booking) PaymentHold() *PaymentHold {
	return b.hold
}

// BookedAt returns the time the claim was won.
func (b *Booking) BookedAt() time.Time {
	return b.bookedAt
}

// PickedUpAt returns the pickup confirmation time, or nil before pickup.
func (b *Booking) PickedUpAt() *time.Time {
	return b.pickedUpAt
}

// DeliveredAt returns the delivery confirmation time, or nil before delivery.
func (b *Booking) DeliveredAt() *time.Time {
	return b.deliveredAt
}

// IsOwnedBy reports whether the given phone is the booking's assigned rider.
// Callers use this for the ownership check on pickup/delivery/payment
// operations.
func (b *Booking) IsOwnedBy(rider kernel.Phone) bool {
	return b.rider.IsEqual(rider)
}

// ConfirmPickup transitions Booked -> InTransit and records the pickup time.
// A second pickup confirmation fails and does not touch the timestamp.
func (b *Booking) ConfirmPickup(at time.Time) error {
	newStatus, err := b.status.ConfirmPickup()
	if err != nil {
		return err
	}

	pickedUpAt := at.UTC()
	b.status = newStatus
	b.pickedUpAt = &pickedUpAt
	return nil
}

// ConfirmDelivery transitions InTransit -> StatusDelivered, records the
// delivery time, and releases the payment hold in the same mutation. The two
// changes are inseparable at the aggregate level; persistence writes them in
// one transaction, so the hold can never be released without the booking
// being delivered or vice versa.
func (b *Booking) ConfirmDelivery(at time.Time) error {
	newStatus, err := b.status.ConfirmDelivery()
	if err != nil {
		return err
	}

	if err = b.hold.release(at); err != nil {
		return err
	}

	deliveredAt := at.UTC()
	b.status = newStatus
	b.deliveredAt = &deliveredAt
	return nil
}

func (b *Booking) setID(id kernel.BookingID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Booking) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	b.orderID = orderID
	return nil
}

func (b *Booking) setRider(rider kernel.Phone) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	b.rider = rider
	return nil
}

func (b *Booking) setBuyer(buyer kernel.Phone) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	b.buyer = buyer
	return nil
}

func (b *Booking) setMealName(mealName string) error {
	if mealName == "" {
		return errs.NewValueIsRequiredError("mealName")
	}
	b.mealName = mealName
	return nil
}

func (b *Booking) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	b.location = location
	return nil
}

func (b *Booking) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	b.price = price
	return nil
}
