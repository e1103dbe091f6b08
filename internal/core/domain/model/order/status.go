package order

import (
	"fmt"

	"mealbot/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with strictly forward transitions:
//
//	PendingPayment ──> PaymentConfirmed ──> AssignedToRider ──> Delivered
//
// No transition may skip a state or move backward.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPayment is the initial status: the buyer has composed the order
	// but has not yet confirmed payment.
	PendingPayment

	// PaymentConfirmed means payment was confirmed and the order is queued
	// for rider booking.
	PaymentConfirmed

	// AssignedToRider means exactly one rider has claimed the order.
	AssignedToRider

	// Delivered is the final state: the rider confirmed delivery.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		PendingPayment:   "pending_payment",
		PaymentConfirmed: "payment_confirmed",
		AssignedToRider:  "assigned_to_rider",
		Delivered:        "delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingPayment:   "pending_payment",
		PaymentConfirmed: "payment_confirmed",
		AssignedToRider:  "assigned_to_rider",
		Delivered:        "delivered",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, e.g. "payment_confirmed".
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ConfirmPayment transitions PendingPayment -> PaymentConfirmed.
func (s Status) ConfirmPayment() (Status, error) {
	if s != PendingPayment {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to confirm payment", s))
	}
	return PaymentConfirmed, nil
}

// AssignRider transitions PaymentConfirmed -> AssignedToRider.
// Unlike reassignable dispatch systems, a second assignment is rejected:
// booking is exclusive, so AssignedToRider cannot be entered twice.
func (s Status) AssignRider() (Status, error) {
	if s != PaymentConfirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign a rider", s))
	}
	return AssignedToRider, nil
}

// Complete transitions AssignedToRider -> Delivered, the final state.
func (s Status) Complete() (Status, error) {
	if s != AssignedToRider {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to complete", s))
	}
	return Delivered, nil
}

// ValidateCanHaveRider validates the consistency between order status and
// rider assignment: only assigned or delivered orders carry a rider.
func (s Status) ValidateCanHaveRider(rider bool) error {
	if rider && s != AssignedToRider && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a rider", s))
	}
	if !rider && (s == AssignedToRider || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no rider", s))
	}
	return nil
}
