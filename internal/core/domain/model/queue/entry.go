package queue

import (
	"errors"
	"fmt"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry or RestoreEntry factory functions.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Status represents the lifecycle state of a queue entry.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// PendingBooking means the entry is visible to riders and claimable.
	PendingBooking

	// Booked means a rider has claimed the entry; it is no longer bookable.
	Booked
)

// String returns the persisted name of the status.
func (s Status) String() string {
	switch s {
	case PendingBooking:
		return "pending_booking"
	case Booked:
		return "booked"
	default:
		return "unknown"
	}
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if s != PendingBooking && s != Booked {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid queue entry status", s))
	}
	return nil
}

// Entry is the aggregate root for a bookable order in the rider queue.
// It is keyed by the order id it mirrors.
type Entry struct {
	orderID   kernel.OrderID
	buyer     kernel.Phone
	mealName  string
	location  string
	price     kernel.Money
	status    Status
	rider     *kernel.Phone
	bookingID *kernel.BookingID
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates a queue entry in PendingBooking status for a
// payment-confirmed order.
func NewEntry(
	orderID kernel.OrderID,
	buyer kernel.Phone,
	mealName string,
	location string,
	price kernel.Money,
	createdAt time.Time,
) (*Entry, error) {
	e := &Entry{
		status:        PendingBooking,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		e.setOrderID(orderID),
		e.setBuyer(buyer),
		e.setMealName(mealName),
		e.setLocation(location),
		e.setPrice(price),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence.
// A Booked entry must carry both the winning rider and the booking id;
// a PendingBooking entry must carry neither.
func RestoreEntry(
	orderID kernel.OrderID,
	buyer kernel.Phone,
	mealName string,
	location string,
	price kernel.Money,
	status Status,
	rider *kernel.Phone,
	bookingID *kernel.BookingID,
	createdAt time.Time,
) (*Entry, error) {
	e, err := NewEntry(orderID, buyer, mealName, location, price, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	booked := status == Booked
	if booked != (rider != nil) || booked != (bookingID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s entry must reference rider and booking consistently", status))
	}
	if rider != nil {
		if err = rider.Validate(); err != nil {
			return nil, err
		}
	}
	if bookingID != nil {
		if err = bookingID.Validate(); err != nil {
			return nil, err
		}
	}

	e.status = status
	e.rider = rider
	e.bookingID = bookingID
	return e, nil
}

// Validate ensures the Entry was created via its factory functions.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// OrderID returns the id of the mirrored order (also the entry's identity).
func (e *Entry) OrderID() kernel.OrderID {
	return e.orderID
}

// Buyer returns the phone of the buyer awaiting delivery.
func (e *Entry) Buyer() kernel.Phone {
	return e.buyer
}

// MealName returns the display name of the meal to deliver.
func (e *Entry) MealName() string {
	return e.mealName
}

// Location returns the free-text delivery landmark.
func (e *Entry) Location() string {
	return e.location
}

// Price returns the order price the rider cut is computed from.
func (e *Entry) Price() kernel.Money {
	return e.price
}

// Status returns the current entry status.
func (e *Entry) Status() Status {
	return e.status
}

// IsBookable reports whether the entry can still be claimed.
func (e *Entry) IsBookable() bool {
	return e.status == PendingBooking
}

// Rider returns the winning rider's phone, or nil while pending.
func (e *Entry) Rider() *kernel.Phone {
	return e.rider
}

// BookingID returns the id of the booking that claimed the entry,
// or nil while pending.
func (e *Entry) BookingID() *kernel.BookingID {
	return e.bookingID
}

// CreatedAt returns the time the entry was queued.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// MarkBooked transitions the entry to Booked, recording the winning rider and
// the booking that claimed it. The transition happens at most once; a second
// call fails, which is what guarantees an already-claimed entry can never be
// claimed again.
func (e *Entry) MarkBooked(rider kernel.Phone, bookingID kernel.BookingID) error {
	if err := rider.Validate(); err != nil {
		return err
	}
	if err := bookingID.Validate(); err != nil {
		return err
	}
	if e.status != PendingBooking {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to book", e.status))
	}

	e.status = Booked
	e.rider = &rider
	e.bookingID = &bookingID
	return nil
}

func (e *Entry) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setBuyer(buyer kernel.Phone) error {
	if err := buyer.Validate(); err != nil {
		return err
	}
	e.buyer = buyer
	return nil
}

func (e *Entry) setMealName(mealName string) error {
	if mealName == "" {
		return errs.NewValueIsRequiredError("mealName")
	}
	e.mealName = mealName
	return nil
}

func (e *Entry) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	e.location = location
	return nil
}

func (e *Entry) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	e.price = price
	return nil
}
