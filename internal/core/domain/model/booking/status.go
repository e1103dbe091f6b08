package booking

import (
	"fmt"

	"mealbot/internal/pkg/errs"
)

// Status represents the lifecycle state of a booking.
// Transitions are strictly sequential with no skipping and no regression:
//
//	Booked ──> InTransit ──> Delivered
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Booked is the initial status: the rider has claimed the order but not
	// yet picked it up.
	Booked

	// InTransit means the rider confirmed pickup and is delivering.
	InTransit

	// StatusDelivered is the final state: delivery confirmed, funds released.
	StatusDelivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		Booked:          "booked",
		InTransit:       "in_transit",
		StatusDelivered: "delivered",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s != Booked && s != InTransit && s != StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid booking status", s))
	}
	return nil
}

// String returns the persisted name of the status, e.g. "in_transit".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ConfirmPickup transitions Booked -> InTransit.
func (s Status) ConfirmPickup() (Status, error) {
	if s != Booked {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to confirm pickup", s))
	}
	return InTransit, nil
}

// ConfirmDelivery transitions InTransit -> StatusDelivered. Pickup
// confirmation is mandatory: a booking that never went in transit cannot be
// delivered.
func (s Status) ConfirmDelivery() (Status, error) {
	if s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to confirm delivery", s))
	}
	return StatusDelivered, nil
}

// IsActive reports whether the booking still needs rider action
// (not yet delivered).
func (s Status) IsActive() bool {
	return s == Booked || s == InTransit
}
