package rider

import (
	"errors"
	"fmt"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"
)

// MinNameLength is the minimum length of a rider's display name.
const MinNameLength = 2

// ErrRiderIsNotConstructed is returned when a Rider instance was not created
// through the NewRider or RestoreRider factory functions.
var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

// Rider is the aggregate root for a registered delivery rider. The phone
// number is the rider's identity; totals accumulate monotonically as
// deliveries are confirmed.
type Rider struct {
	phone           kernel.Phone
	name            string
	totalDeliveries int
	totalEarnings   kernel.Money
	registeredAt    time.Time

	isConstructed bool
}

// NewRider registers a rider with zero deliveries and zero earnings.
func NewRider(phone kernel.Phone, name string, registeredAt time.Time) (*Rider, error) {
	zero, err := kernel.NewMoney(0)
	if err != nil {
		return nil, err
	}

	r := &Rider{
		totalEarnings: zero,
		registeredAt:  registeredAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setPhone(phone),
		r.setName(name),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRider reconstructs a Rider from persistence.
func RestoreRider(
	phone kernel.Phone,
	name string,
	totalDeliveries int,
	totalEarnings kernel.Money,
	registeredAt time.Time,
) (*Rider, error) {
	r, err := NewRider(phone, name, registeredAt)
	if err != nil {
		return nil, err
	}

	if totalDeliveries < 0 {
		return nil, errs.NewValueIsOutOfRangeError("totalDeliveries", totalDeliveries, 0, "")
	}
	if err = totalEarnings.Validate(); err != nil {
		return nil, err
	}

	r.totalDeliveries = totalDeliveries
	r.totalEarnings = totalEarnings
	return r, nil
}

// Validate ensures the Rider was created via its factory functions.
func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

// IsEqual compares two riders by phone identity.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.phone.IsEqual(other.phone)
}

// Phone returns the rider's phone number (the aggregate identity).
func (r *Rider) Phone() kernel.Phone {
	return r.phone
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// TotalDeliveries returns the number of confirmed deliveries.
func (r *Rider) TotalDeliveries() int {
	return r.totalDeliveries
}

// TotalEarnings returns the accumulated released earnings.
func (r *Rider) TotalEarnings() kernel.Money {
	return r.totalEarnings
}

// RegisteredAt returns the time the rider was registered.
func (r *Rider) RegisteredAt() time.Time {
	return r.registeredAt
}

// RecordDelivery increments the delivery count and adds the released earnings
// amount to the rider's total. Called once per confirmed delivery.
func (r *Rider) RecordDelivery(earnings kernel.Money) error {
	if err := earnings.Validate(); err != nil {
		return err
	}

	total, err := r.totalEarnings.Add(earnings)
	if err != nil {
		return err
	}

	r.totalDeliveries++
	r.totalEarnings = total
	return nil
}

func (r *Rider) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	r.phone = phone
	return nil
}

func (r *Rider) setName(name string) error {
	if len(name) < MinNameLength {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("name must be at least %d characters", MinNameLength))
	}
	r.name = name
	return nil
}
