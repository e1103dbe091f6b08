package queries

import (
	"context"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/queue"

	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler retrieves the claimable order board from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for pending order queries.
// Requires a GORM database connection for query execution.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all claimable orders, oldest first so
// the longest-waiting buyers surface at the top of the rider's list.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			meal_name,
			location,
			price_minor_units,
			created_at
		FROM queue_entries
		WHERE status = ?
		ORDER BY created_at
	`, queue.PendingBooking).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp            GetPendingOrdersQueryResponse
			orderID         string
			priceMinorUnits int64
			createdAt       time.Time
		)

		err = rows.Scan(
			&orderID,
			&resp.MealName,
			&resp.Location,
			&priceMinorUnits,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.OrderIDFromString(orderID)
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = id

		price, moneyErr := kernel.NewMoney(priceMinorUnits)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.Price = price
		resp.CreatedAt = createdAt

		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
