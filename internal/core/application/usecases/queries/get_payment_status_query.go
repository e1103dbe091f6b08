package queries

import (
	"errors"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrGetPaymentStatusQueryIsNotConstructed = errors.New(
	"GetPaymentStatusQuery must be created via NewGetPaymentStatusQuery constructor",
)

// GetPaymentStatusQuery retrieves a rider's earnings ledger: every payment
// hold with its custody status, plus the held and released totals. Backs the
// rider "payment" command.
type GetPaymentStatusQuery struct { //nolint:recvcheck //using for validation
	rider kernel.Phone

	guard guard.ConstructorGuard
}

// NewGetPaymentStatusQuery creates a query for one rider's payment status.
func NewGetPaymentStatusQuery(rider kernel.Phone) (GetPaymentStatusQuery, error) {
	if err := rider.Validate(); err != nil {
		return GetPaymentStatusQuery{}, err
	}
	return GetPaymentStatusQuery{rider: rider, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentStatusQueryIsNotConstructed)
}

// Rider returns the phone of the rider whose earnings are requested.
func (q GetPaymentStatusQuery) Rider() kernel.Phone {
	return q.rider
}

// PaymentHoldResponse represents one earnings record in the read model.
type PaymentHoldResponse struct {
	BookingID kernel.BookingID
	OrderID   kernel.OrderID
	Amount    kernel.Money
	Status    booking.HoldStatus
	CreatedAt time.Time
}

// GetPaymentStatusQueryResponse aggregates a rider's earnings records with
// running totals: TotalHeld is money awaiting delivery confirmation,
// TotalReleased is money already earned.
type GetPaymentStatusQueryResponse struct {
	Holds         []PaymentHoldResponse
	TotalHeld     kernel.Money
	TotalReleased kernel.Money
}
