package queries

import (
	"errors"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/guard"
)

var ErrGetRiderBookingsQueryIsNotConstructed = errors.New(
	"GetRiderBookingsQuery must be created via NewGetRiderBookingsQuery constructor",
)

// GetRiderBookingsQuery retrieves a rider's active bookings: claims that
// still need a pickup or delivery confirmation. Backs the rider "myorders"
// command.
type GetRiderBookingsQuery struct { //nolint:recvcheck //using for validation
	rider kernel.Phone

	guard guard.ConstructorGuard
}

// NewGetRiderBookingsQuery creates a query for one rider's active bookings.
func NewGetRiderBookingsQuery(rider kernel.Phone) (GetRiderBookingsQuery, error) {
	if err := rider.Validate(); err != nil {
		return GetRiderBookingsQuery{}, err
	}
	return GetRiderBookingsQuery{rider: rider, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderBookingsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderBookingsQueryIsNotConstructed)
}

// Rider returns the phone of the rider whose bookings are requested.
func (q GetRiderBookingsQuery) Rider() kernel.Phone {
	return q.rider
}

// GetRiderBookingsQueryResponse represents one active booking in the read
// model, with the status the rider needs to know what to do next.
type GetRiderBookingsQueryResponse struct {
	BookingID kernel.BookingID
	OrderID   kernel.OrderID
	MealName  string
	Location  string
	Status    booking.Status
	BookedAt  time.Time
}
