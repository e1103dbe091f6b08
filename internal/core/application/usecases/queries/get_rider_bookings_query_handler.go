package queries

import (
	"context"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetRiderBookingsQueryHandler retrieves a rider's active bookings from the
// database. Delivered bookings are excluded; they belong to payment history.
type GetRiderBookingsQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderBookingsQueryHandler creates a handler for rider booking queries.
// Requires a GORM database connection for query execution.
func NewGetRiderBookingsQueryHandler(db *gorm.DB) GetRiderBookingsQueryHandler {
	return GetRiderBookingsQueryHandler{db: db}
}

// Handle executes the query to retrieve the rider's active bookings,
// newest first.
func (h GetRiderBookingsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderBookingsQuery,
) ([]GetRiderBookingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bookings := make([]GetRiderBookingsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			meal_name,
			location,
			status,
			booked_at
		FROM bookings
		WHERE rider = ? AND status != ?
		ORDER BY booked_at DESC
	`, query.Rider().String(), booking.StatusDelivered).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp      GetRiderBookingsQueryResponse
			bookingID string
			orderID   string
			status    int
			bookedAt  time.Time
		)

		err = rows.Scan(
			&bookingID,
			&orderID,
			&resp.MealName,
			&resp.Location,
			&status,
			&bookedAt,
		)
		if err != nil {
			return nil, err
		}

		bID, idErr := kernel.BookingIDFromString(bookingID)
		if idErr != nil {
			return nil, idErr
		}
		resp.BookingID = bID

		oID, idErr := kernel.OrderIDFromString(orderID)
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = oID

		resp.Status = booking.Status(status)
		resp.BookedAt = bookedAt

		bookings = append(bookings, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
