package booking

import (
	"errors"
	"fmt"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"
)

// ErrPaymentHoldIsNotConstructed is returned when a PaymentHold was not
// created through its factory functions.
var ErrPaymentHoldIsNotConstructed = errors.New(
	"PaymentHold must be created via newPaymentHold or RestorePaymentHold")

// HoldStatus represents the custody state of a rider's earnings.
type HoldStatus int

const (
	// HoldStatusUnknown represents an invalid or undefined status.
	HoldStatusUnknown HoldStatus = iota

	// Held means the earnings are escrowed pending delivery confirmation.
	Held

	// Released means the earnings were released to the rider.
	// This is a final state; a hold never returns to Held.
	Released
)

// String returns the persisted name of the status.
func (s HoldStatus) String() string {
	switch s {
	case Held:
		return "held"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Validate checks if the HoldStatus value is one of the defined states.
func (s HoldStatus) Validate() error {
	if s != Held && s != Released {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid payment hold status", s))
	}
	return nil
}

// PaymentHold is the escrow record for a booking's rider earnings.
// Exactly one hold exists per booking, created with it and owned by it;
// only the Booking aggregate transitions a hold to Released.
type PaymentHold struct {
	bookingID  kernel.BookingID
	orderID    kernel.OrderID
	rider      kernel.Phone
	amount     kernel.Money
	status     HoldStatus
	createdAt  time.Time
	releasedAt *time.Time

	isConstructed bool
}

// newPaymentHold creates a Held hold. Called only from NewBooking so a hold
// can never exist without its booking.
func newPaymentHold(
	bookingID kernel.BookingID,
	orderID kernel.OrderID,
	rider kernel.Phone,
	amount kernel.Money,
	createdAt time.Time,
) (*PaymentHold, error) {
	if err := errors.Join(
		bookingID.Validate(),
		orderID.Validate(),
		rider.Validate(),
		amount.Validate(),
	); err != nil {
		return nil, err
	}

	return &PaymentHold{
		bookingID:     bookingID,
		orderID:       orderID,
		rider:         rider,
		amount:        amount,
		status:        Held,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestorePaymentHold reconstructs a hold from persistence.
// A Released hold must carry a release timestamp; a Held hold must not.
func RestorePaymentHold(
	bookingID kernel.BookingID,
	orderID kernel.OrderID,
	rider kernel.Phone,
	amount kernel.Money,
	status HoldStatus,
	createdAt time.Time,
	releasedAt *time.Time,
) (*PaymentHold, error) {
	h, err := newPaymentHold(bookingID, orderID, rider, amount, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if (status == Released) != (releasedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s hold must reference release time consistently", status))
	}

	h.status = status
	h.releasedAt = releasedAt
	return h, nil
}

// Validate ensures the hold was created via its factory functions.
func (h *PaymentHold) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrPaymentHoldIsNotConstructed
	}
	return nil
}

// BookingID returns the id of the owning booking (also the hold's identity).
func (h *PaymentHold) BookingID() kernel.BookingID {
	return h.bookingID
}

// OrderID returns the id of the order the earnings stem from.
func (h *PaymentHold) OrderID() kernel.OrderID {
	return h.orderID
}

// Rider returns the phone of the rider the earnings belong to.
func (h *PaymentHold) Rider() kernel.Phone {
	return h.rider
}

// Amount returns the escrowed earnings amount.
func (h *PaymentHold) Amount() kernel.Money {
	return h.amount
}

// Status returns the current custody status.
func (h *PaymentHold) Status() HoldStatus {
	return h.status
}

// CreatedAt returns the time the hold was created.
func (h *PaymentHold) CreatedAt() time.Time {
	return h.createdAt
}

// ReleasedAt returns the release time, or nil while held.
func (h *PaymentHold) ReleasedAt() *time.Time {
	return h.releasedAt
}

// release transitions Held -> Released. Unexported: only the owning Booking
// releases funds, as part of its delivery confirmation.
func (h *PaymentHold) release(at time.Time) error {
	if h.status != Held {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to release", h.status))
	}

	releasedAt := at.UTC()
	h.status = Released
	h.releasedAt = &releasedAt
	return nil
}
