package kernel

import (
	"fmt"

	"mealbot/internal/pkg/errs"
	"mealbot/internal/pkg/guard"
)

const (
	// MinorUnitsPerShilling is the number of minor units (cents) in one shilling.
	MinorUnitsPerShilling = 100

	// BasisPointsDenominator converts basis points to a fraction: 1500 bps = 15%.
	BasisPointsDenominator = 10000
)

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or MoneyFromShillings")

// Money is a non-negative amount of Kenyan shillings held as integer minor
// units (cents). All arithmetic is integer-only; there is no floating point
// anywhere in payment computation, so repeated percentage cuts cannot drift.
type Money struct {
	minorUnits int64
	guard      guard.ConstructorGuard
}

// NewMoney creates a Money amount from minor units (cents).
// Negative amounts are rejected.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d minor units is negative", minorUnits))
	}
	return Money{minorUnits: minorUnits, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromShillings creates a Money amount from whole shillings.
func MoneyFromShillings(shillings int64) (Money, error) {
	return NewMoney(shillings * MinorUnitsPerShilling)
}

// MinorUnits returns the amount in cents.
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// Shillings returns the whole-shilling part of the amount, truncating cents.
func (m Money) Shillings() int64 {
	return m.minorUnits / MinorUnitsPerShilling
}

// MultiplyBasisPoints returns the amount scaled by bps/10000, truncating
// toward zero. Used to compute the rider's earnings cut from an order price.
func (m Money) MultiplyBasisPoints(bps int64) (Money, error) {
	if bps < 0 || bps > BasisPointsDenominator {
		return Money{}, errs.NewValueIsOutOfRangeError("basisPoints", bps, 0, BasisPointsDenominator)
	}
	return NewMoney(m.minorUnits * bps / BasisPointsDenominator)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) (Money, error) {
	return NewMoney(m.minorUnits + other.minorUnits)
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.minorUnits == other.minorUnits
}

// String renders the amount for chat display: "KES 320" or "KES 320.50".
func (m Money) String() string {
	cents := m.minorUnits % MinorUnitsPerShilling
	if cents == 0 {
		return fmt.Sprintf("KES %d", m.Shillings())
	}
	return fmt.Sprintf("KES %d.%02d", m.Shillings(), cents)
}

// Validate reports whether the amount was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
