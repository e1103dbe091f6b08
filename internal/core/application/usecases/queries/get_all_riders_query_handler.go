package queries

import (
	"context"
	"time"

	"mealbot/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetAllRidersQueryHandler retrieves all registered riders from the database.
type GetAllRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllRidersQueryHandler creates a handler for rider listing queries.
// Requires a GORM database connection for query execution.
func NewGetAllRidersQueryHandler(db *gorm.DB) GetAllRidersQueryHandler {
	return GetAllRidersQueryHandler{db: db}
}

// Handle executes the query to retrieve all riders, sorted by name.
func (h GetAllRidersQueryHandler) Handle(
	ctx context.Context,
	query GetAllRidersQuery,
) ([]GetAllRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	riders := make([]GetAllRidersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			phone,
			name,
			total_deliveries,
			total_earnings_minor_units,
			registered_at
		FROM riders
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp               GetAllRidersQueryResponse
			phone              string
			earningsMinorUnits int64
			registeredAt       time.Time
		)

		err = rows.Scan(
			&phone,
			&resp.Name,
			&resp.TotalDeliveries,
			&earningsMinorUnits,
			&registeredAt,
		)
		if err != nil {
			return nil, err
		}

		riderPhone, phoneErr := kernel.PhoneFromString(phone)
		if phoneErr != nil {
			return nil, phoneErr
		}
		resp.Phone = riderPhone

		earnings, moneyErr := kernel.NewMoney(earningsMinorUnits)
		if moneyErr != nil {
			return nil, moneyErr
		}
		resp.TotalEarnings = earnings
		resp.RegisteredAt = registeredAt

		riders = append(riders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}
