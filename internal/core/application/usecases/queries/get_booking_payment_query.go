package queries

import (
	"errors"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrGetBookingPaymentQueryIsNotConstructed = errors.New(
	"GetBookingPaymentQuery must be created via NewGetBookingPaymentQuery constructor",
)

// GetBookingPaymentQuery retrieves the payment hold of a single booking,
// scoped to the requesting rider so one rider can never read another's
// earnings record. Backs the rider "payment BOOK-12345" command.
type GetBookingPaymentQuery struct { //nolint:recvcheck //using for validation
	bookingID kernel.BookingID
	rider     kernel.Phone

	guard guard.ConstructorGuard
}

// NewGetBookingPaymentQuery creates a query for one booking's payment hold.
func NewGetBookingPaymentQuery(bookingID kernel.BookingID, rider kernel.Phone) (GetBookingPaymentQuery, error) {
	if err := bookingID.Validate(); err != nil {
		return GetBookingPaymentQuery{}, err
	}
	if err := rider.Validate(); err != nil {
		return GetBookingPaymentQuery{}, err
	}
	return GetBookingPaymentQuery{
		bookingID: bookingID,
		rider:     rider,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBookingPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetBookingPaymentQueryIsNotConstructed)
}

// BookingID returns the booking whose hold is requested.
func (q GetBookingPaymentQuery) BookingID() kernel.BookingID {
	return q.bookingID
}

// Rider returns the phone of the rider making the request.
func (q GetBookingPaymentQuery) Rider() kernel.Phone {
	return q.rider
}
