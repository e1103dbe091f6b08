package queries

import (
	"context"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetPaymentStatusQueryHandler retrieves a rider's earnings ledger from the
// database and computes held/released totals in integer minor units.
type GetPaymentStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentStatusQueryHandler creates a handler for payment status
// queries. Requires a GORM database connection for query execution.
func NewGetPaymentStatusQueryHandler(db *gorm.DB) GetPaymentStatusQueryHandler {
	return GetPaymentStatusQueryHandler{db: db}
}

// Handle executes the query to retrieve the rider's payment holds, newest
// first, together with the held and released totals.
func (h GetPaymentStatusQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentStatusQuery,
) (GetPaymentStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	resp := GetPaymentStatusQueryResponse{
		Holds: make([]PaymentHoldResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			booking_id,
			order_id,
			amount_minor_units,
			status,
			created_at
		FROM payment_holds
		WHERE rider = ?
		ORDER BY created_at DESC
	`, query.Rider().String()).Rows()
	if err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}
	defer rows.Close()

	var heldMinorUnits, releasedMinorUnits int64

	for rows.Next() {
		var (
			hold             PaymentHoldResponse
			bookingID        string
			orderID          string
			amountMinorUnits int64
			status           int
			createdAt        time.Time
		)

		err = rows.Scan(
			&bookingID,
			&orderID,
			&amountMinorUnits,
			&status,
			&createdAt,
		)
		if err != nil {
			return GetPaymentStatusQueryResponse{}, err
		}

		bID, idErr := kernel.BookingIDFromString(bookingID)
		if idErr != nil {
			return GetPaymentStatusQueryResponse{}, idErr
		}
		hold.BookingID = bID

		oID, idErr := kernel.OrderIDFromString(orderID)
		if idErr != nil {
			return GetPaymentStatusQueryResponse{}, idErr
		}
		hold.OrderID = oID

		amount, moneyErr := kernel.NewMoney(amountMinorUnits)
		if moneyErr != nil {
			return GetPaymentStatusQueryResponse{}, moneyErr
		}
		hold.Amount = amount
		hold.Status = booking.HoldStatus(status)
		hold.CreatedAt = createdAt

		switch hold.Status {
		case booking.Held:
			heldMinorUnits += amountMinorUnits
		case booking.Released:
			releasedMinorUnits += amountMinorUnits
		}

		resp.Holds = append(resp.Holds, hold)
	}

	if err = rows.Err(); err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	if resp.TotalHeld, err = kernel.NewMoney(heldMinorUnits); err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}
	if resp.TotalReleased, err = kernel.NewMoney(releasedMinorUnits); err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	return resp, nil
}
