package kernel

import (
	"fmt"
	"strings"

	"mealbot/internal/pkg/errs"
	"mealbot/internal/pkg/guard"

	"github.com/google/uuid"
)

const (
	// OrderIDPrefix prefixes every order identifier, e.g. "ORD-1A2B3C4D".
	OrderIDPrefix = "ORD-"

	// BookingIDPrefix prefixes every booking identifier, e.g. "BOOK-1A2B3C4D".
	BookingIDPrefix = "BOOK-"
)

// ErrOrderIDIsNotConstructed is returned when validating a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via NewOrderID or OrderIDFromString")

// ErrBookingIDIsNotConstructed is returned when validating a zero-value BookingID.
var ErrBookingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"BookingID must be created via NewBookingID or BookingIDFromString")

// OrderID is the unique identifier of an order. Identifiers are short,
// human-readable tokens riders can type back over chat ("book ORD-1A2B3C4D").
//
// The zero value is invalid; use NewOrderID or OrderIDFromString.
type OrderID struct {
	value string
	guard guard.ConstructorGuard
}

// NewOrderID generates a fresh order identifier from a random UUID suffix.
func NewOrderID() OrderID {
	return OrderID{
		value: OrderIDPrefix + randomIDSuffix(),
		guard: guard.NewConstructorGuard(),
	}
}

// OrderIDFromString parses an order identifier received from chat or storage.
// The identifier must carry the "ORD-" prefix and a non-empty suffix.
// Matching is case-insensitive; the result is normalized to upper case.
func OrderIDFromString(s string) (OrderID, error) {
	normalized, err := parsePrefixedID(s, OrderIDPrefix, "orderId")
	if err != nil {
		return OrderID{}, err
	}
	return OrderID{value: normalized, guard: guard.NewConstructorGuard()}, nil
}

// String returns the textual form of the identifier, e.g. "ORD-1A2B3C4D".
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate reports whether the identifier was properly constructed.
func (id OrderID) Validate() error {
	return id.guard.Validate(ErrOrderIDIsNotConstructed)
}

// BookingID is the unique identifier of a booking, the record of a rider's
// exclusive claim on one order.
//
// The zero value is invalid; use NewBookingID or BookingIDFromString.
type BookingID struct {
	value string
	guard guard.ConstructorGuard
}

// NewBookingID generates a fresh booking identifier from a random UUID suffix.
func NewBookingID() BookingID {
	return BookingID{
		value: BookingIDPrefix + randomIDSuffix(),
		guard: guard.NewConstructorGuard(),
	}
}

// BookingIDFromString parses a booking identifier received from chat or storage.
// The identifier must carry the "BOOK-" prefix and a non-empty suffix.
// Matching is case-insensitive; the result is normalized to upper case.
func BookingIDFromString(s string) (BookingID, error) {
	normalized, err := parsePrefixedID(s, BookingIDPrefix, "bookingId")
	if err != nil {
		return BookingID{}, err
	}
	return BookingID{value: normalized, guard: guard.NewConstructorGuard()}, nil
}

// String returns the textual form of the identifier, e.g. "BOOK-1A2B3C4D".
func (id BookingID) String() string {
	return id.value
}

// IsEqual compares two booking identifiers by value.
func (id BookingID) IsEqual(other BookingID) bool {
	return id.value == other.value
}

// Validate reports whether the identifier was properly constructed.
func (id BookingID) Validate() error {
	return id.guard.Validate(ErrBookingIDIsNotConstructed)
}

// randomIDSuffix returns the first UUID group in upper case, eight hex chars.
func randomIDSuffix() string {
	return strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
}

func parsePrefixedID(s, prefix, paramName string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	if !strings.HasPrefix(normalized, prefix) || len(normalized) == len(prefix) {
		return "", errs.NewValueIsInvalidErrorWithCause(paramName,
			fmt.Errorf("%q does not match %s<suffix>", s, prefix))
	}
	return normalized, nil
}
